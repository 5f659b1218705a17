package mutation

import "github.com/yigit/trainhub/internal/cache"

// Policy decides which cache kinds a successful write makes stale
type Policy interface {
	Targets(kind cache.Kind) []cache.Kind
}

// OwnKind invalidates only the kind that was written. Collections embedding
// the written entity (a course showing its trainer, a grade showing its
// student) stay stale until they are refetched for another reason.
type OwnKind struct{}

// Targets implements Policy
func (OwnKind) Targets(kind cache.Kind) []cache.Kind {
	return []cache.Kind{kind}
}

// Related also invalidates every kind that embeds the written one
type Related struct{}

var embeddedBy = map[cache.Kind][]cache.Kind{
	cache.Students: {cache.Registrations, cache.Grades},
	cache.Trainers: {cache.Courses, cache.Registrations, cache.Grades},
	cache.Courses:  {cache.Registrations, cache.Grades},
}

// Targets implements Policy
func (Related) Targets(kind cache.Kind) []cache.Kind {
	return append([]cache.Kind{kind}, embeddedBy[kind]...)
}
