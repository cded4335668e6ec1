package promptsearch

import (
	"fmt"
	"reflect"
	"time"
)

const tagKey = "promptsearch"

// Struct tag roles.
const (
	roleID          = "id"
	roleUserID      = "userId"
	roleTitle       = "title"
	roleDescription = "description"
	roleText        = "text"
	roleCategory    = "category"
	roleTags        = "tags"
	rolePrivate     = "private"
	roleCreatedAt   = "createdAt"
)

var (
	stringsType = reflect.TypeOf([]string(nil))
	timeType    = reflect.TypeOf(time.Time{})
)

// schemaMeta maps struct fields to prompt roles, parsed once per type.
type schemaMeta struct {
	typ   reflect.Type
	ptr   bool           // T is a pointer to typ
	roles map[string]int // role → struct field index
}

// parseSchema reflects on T and extracts promptsearch struct tag metadata.
func parseSchema[T any]() (*schemaMeta, error) {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		return nil, fmt.Errorf("promptsearch: type parameter must be a struct")
	}
	ptr := t.Kind() == reflect.Pointer
	if ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("promptsearch: type %s is not a struct", t)
	}

	meta := &schemaMeta{typ: t, ptr: ptr, roles: make(map[string]int)}
	for i := range t.NumField() {
		f := t.Field(i)
		role := f.Tag.Get(tagKey)
		if role == "" || role == "-" {
			continue
		}
		if err := checkRoleType(role, f); err != nil {
			return nil, err
		}
		if _, dup := meta.roles[role]; dup {
			return nil, fmt.Errorf("promptsearch: duplicate %s tag on field %s", role, f.Name)
		}
		meta.roles[role] = i
	}

	if _, ok := meta.roles[roleUserID]; !ok {
		return nil, fmt.Errorf("promptsearch: no field with `promptsearch:\"userId\"` tag in %s", t)
	}
	if _, ok := meta.roles[roleTitle]; !ok {
		return nil, fmt.Errorf("promptsearch: no field with `promptsearch:\"title\"` tag in %s", t)
	}
	return meta, nil
}

func checkRoleType(role string, f reflect.StructField) error {
	if !f.IsExported() {
		return fmt.Errorf("promptsearch: field %s must be exported", f.Name)
	}
	var ok bool
	switch role {
	case roleID, roleUserID, roleTitle, roleDescription, roleText, roleCategory:
		ok = f.Type.Kind() == reflect.String
	case roleTags:
		ok = f.Type == stringsType
	case rolePrivate:
		ok = f.Type.Kind() == reflect.Bool
	case roleCreatedAt:
		ok = f.Type == timeType || f.Type.Kind() == reflect.Int64
	default:
		return fmt.Errorf("promptsearch: unknown role %q on field %s", role, f.Name)
	}
	if !ok {
		return fmt.Errorf("promptsearch: field %s has type %s, not valid for role %q", f.Name, f.Type, role)
	}
	return nil
}

// toPrompt converts a typed struct to a Prompt using schema metadata.
func (m *schemaMeta) toPrompt(item any) Prompt {
	v := reflect.ValueOf(item)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}

	str := func(role string) string {
		if i, ok := m.roles[role]; ok {
			return v.Field(i).String()
		}
		return ""
	}

	p := Prompt{
		ID:          str(roleID),
		UserID:      str(roleUserID),
		Title:       str(roleTitle),
		Description: str(roleDescription),
		Text:        str(roleText),
		Category:    str(roleCategory),
	}
	if i, ok := m.roles[roleTags]; ok {
		p.Tags, _ = v.Field(i).Interface().([]string)
	}
	if i, ok := m.roles[rolePrivate]; ok {
		p.IsPrivate = v.Field(i).Bool()
	}
	if i, ok := m.roles[roleCreatedAt]; ok {
		fv := v.Field(i)
		if fv.Type() == timeType {
			p.CreatedAt, _ = fv.Interface().(time.Time)
		} else if ms := fv.Int(); ms != 0 {
			p.CreatedAt = time.UnixMilli(ms).UTC()
		}
	}
	return p
}

// fromPrompt converts a Prompt back to a typed struct using schema metadata.
func (m *schemaMeta) fromPrompt(p *Prompt) any {
	v := reflect.New(m.typ).Elem()

	set := func(role, val string) {
		if i, ok := m.roles[role]; ok {
			v.Field(i).SetString(val)
		}
	}
	set(roleID, p.ID)
	set(roleUserID, p.UserID)
	set(roleTitle, p.Title)
	set(roleDescription, p.Description)
	set(roleText, p.Text)
	set(roleCategory, p.Category)

	if i, ok := m.roles[roleTags]; ok {
		v.Field(i).Set(reflect.ValueOf(append([]string{}, p.Tags...)))
	}
	if i, ok := m.roles[rolePrivate]; ok {
		v.Field(i).SetBool(p.IsPrivate)
	}
	if i, ok := m.roles[roleCreatedAt]; ok {
		fv := v.Field(i)
		if fv.Type() == timeType {
			fv.Set(reflect.ValueOf(p.CreatedAt))
		} else {
			fv.SetInt(p.CreatedAt.UnixMilli())
		}
	}
	if m.ptr {
		return v.Addr().Interface()
	}
	return v.Interface()
}
