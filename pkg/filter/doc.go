// Package filter decides which metadata elements appear in the output.
//
// A run builds exactly one base policy (IncludeAll, PublicOnly,
// InternalsAndPublic or DocIDIncludeList) and intersects it with any number
// of modifiers (ExcludeCompilerGenerated, DocIDExcludeList,
// ExcludeAttributes). Intersect flattens the chain into an ordered slice of
// predicates evaluated by one short-circuiting AND, so the result does not
// depend on how the chain was associated or ordered.
//
// Filters are pure: they never mutate the metadata tree and may be called
// any number of times in any order.
package filter
