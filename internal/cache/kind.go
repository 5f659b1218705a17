package cache

// Kind identifies one cached collection
type Kind int

const (
	Students Kind = iota + 1
	Trainers
	Courses
	Registrations
	Grades
	Users
)

// Kinds lists every resource kind
var Kinds = []Kind{Students, Trainers, Courses, Registrations, Grades, Users}

func (k Kind) String() string {
	switch k {
	case Students:
		return "students"
	case Trainers:
		return "trainers"
	case Courses:
		return "courses"
	case Registrations:
		return "registrations"
	case Grades:
		return "grades"
	case Users:
		return "users"
	}
	return "unknown"
}
