package venue

// Flag is a boolean column. CSV renders it as True/False; JSON stays a plain
// boolean.
type Flag bool

func (f Flag) MarshalCSV() (string, error) {
	if f {
		return "True", nil
	}
	return "False", nil
}
