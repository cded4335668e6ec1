// Package match implements typo-tolerant, field-weighted text matching for
// prompt search. The search pipeline depends on it only through a Matcher
// interface, so another approximate-matching algorithm can be plugged in
// without touching scoring or result assembly.
package match
