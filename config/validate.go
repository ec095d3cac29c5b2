package config

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/philipp01105/rlog/core"
)

// Validate checks the configuration. Errors are validation.Errors keyed by
// field name.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Logging,
			validation.Required,
			validation.By(func(value interface{}) error {
				lc, ok := value.(LoggingConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a LoggingConfig")
				}
				return lc.validate()
			}),
		),
		validation.Field(&c.Console,
			validation.By(func(value interface{}) error {
				cc, ok := value.(ConsoleConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a ConsoleConfig")
				}
				return validation.ValidateStruct(&cc,
					validation.Field(&cc.Target,
						validation.Required,
						validation.In(TargetStdout, TargetStderr, TargetDiscard),
					),
					validation.Field(&cc.ErrorRank,
						validation.Min(-1),
					),
				)
			}),
		),
	)
}

func (lc LoggingConfig) validate() error {
	// Level and message checks need a valid enumeration
	var ls core.Levels
	levelsErr := validation.Validate(lc.CustomLevels, validation.By(validateCustomLevels))
	if levelsErr == nil {
		var err error
		if ls, err = (&Config{Logging: lc}).Levels(); err != nil {
			ls = core.Levels{}
		}
	}

	return validation.ValidateStruct(&lc,
		validation.Field(&lc.Levels,
			validation.When(len(lc.CustomLevels) == 0,
				validation.Required,
				validation.By(knownPreset),
			),
		),
		validation.Field(&lc.CustomLevels,
			validation.By(validateCustomLevels),
		),
		validation.Field(&lc.Level,
			validation.Required,
			validation.When(ls.Len() > 0, validation.By(knownLevel(ls))),
		),
		validation.Field(&lc.Messages,
			validation.Required,
			validation.When(ls.Len() > 0, validation.Each(validation.By(validMessage(ls)))),
		),
	)
}

// knownPreset accepts any name core.Preset resolves, so case follows Preset.
func knownPreset(value interface{}) error {
	name, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}
	if name == "" {
		return nil
	}
	if _, ok := core.Preset(name); !ok {
		return validation.NewError("validation_unknown_preset",
			"must be one of "+strings.Join(core.PresetNames(), ", "))
	}
	return nil
}

func validateCustomLevels(value interface{}) error {
	names, ok := value.([]string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a list of level names")
	}
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name == "" {
			return validation.NewError("validation_empty_level", "level names cannot be empty")
		}
		if _, dup := seen[name]; dup {
			return validation.NewError("validation_duplicate_level", "level names must be unique")
		}
		seen[name] = struct{}{}
	}
	return nil
}

func knownLevel(ls core.Levels) validation.RuleFunc {
	return func(value interface{}) error {
		name, ok := value.(string)
		if !ok {
			return validation.NewError("validation_invalid_type", "must be a string")
		}
		if _, err := ls.ParseLevel(name); err != nil {
			return validation.NewError("validation_unknown_level", "must be one of the configured levels")
		}
		return nil
	}
}

func validMessage(ls core.Levels) validation.RuleFunc {
	return func(value interface{}) error {
		mc, ok := value.(MessageConfig)
		if !ok {
			return validation.NewError("validation_invalid_type", "must be a message")
		}
		return validation.ValidateStruct(&mc,
			validation.Field(&mc.Level,
				validation.Required,
				validation.By(knownLevel(ls)),
			),
			validation.Field(&mc.Message,
				validation.Required,
			),
		)
	}
}
