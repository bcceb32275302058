package runtime

// Must panics if err is non-nil. Reserved for setup code that can't continue on error.
func Must(err error) {
	if err != nil {
		panic(err)
	}
}
