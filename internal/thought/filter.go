package thought

// Filter selects which thoughts GetThoughts returns: all of them, or those of one author.
type Filter struct {
	username string
	byAuthor bool
}

func All() Filter {
	return Filter{}
}

func ByUsername(username string) Filter {
	return Filter{username: username, byAuthor: true}
}

// Username reports the author the filter is restricted to, if any.
func (f Filter) Username() (string, bool) {
	return f.username, f.byAuthor
}

// Match reports whether a thought by author passes the filter.
func (f Filter) Match(author string) bool {
	return !f.byAuthor || f.username == author
}
