package core

import "fmt"

// Template is a predeclared message: the level it is logged at and its text
type Template struct {
	Level   string `json:"level" yaml:"level" mapstructure:"level"`
	Message string `json:"message" yaml:"message" mapstructure:"message"`
}

// Validate checks that the template's level belongs to ls
func (t Template) Validate(ls Levels) error {
	if !ls.Contains(t.Level) {
		_, err := ls.Lookup(t.Level)
		return err
	}
	return nil
}

// Compose returns "<level>.<message>", the prefix of every emitted line
func (t Template) Compose() string {
	return t.Level + "." + t.Message
}

// String implements fmt.Stringer
func (t Template) String() string {
	return fmt.Sprintf("%s(%s)", t.Level, t.Message)
}
