package loader

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/warp/residence-engine/generic"
)

// LabelPattern is what permit names and trip locations may contain.
var LabelPattern = regexp.MustCompile(`^[a-zA-Z0-9_\- ]+$`)

// ValidatorSvc holds the shared validator and its english translator.
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc
)

// Validator returns the process-wide validator, building it on first use.
// Field names in messages follow json tags.
func Validator() *ValidatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		register(v, trans, "label", "{0} may only contain letters, digits, spaces, hyphens and underscores",
			func(fl validator.FieldLevel) bool {
				return LabelPattern.MatchString(fl.Field().String())
			})
		dateText := fmt.Sprintf("{0} must be a date in YYYY-MM-DD format between %d and %d",
			generic.MinYear, generic.MaxYear)
		register(v, trans, "date", dateText,
			func(fl validator.FieldLevel) bool {
				_, err := generic.ParseDate(fl.Field().String())
				return err == nil
			})

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

func register(v *validator.Validate, trans ut.Translator, tag, text string, fn validator.Func) {
	_ = v.RegisterValidation(tag, fn)
	_ = v.RegisterTranslation(tag, trans,
		func(ut ut.Translator) error {
			return ut.Add(tag, text, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T(tag, fe.Field())
			return msg
		},
	)
}

// Check validates s and returns the first failing field path (without the
// struct name) and a readable message. ok is true when s is valid.
func Check(s any) (field, message string, ok bool) {
	err := Validator().Validator.Struct(s)
	if err == nil {
		return "", "", true
	}
	verrs, isVerrs := err.(validator.ValidationErrors)
	if !isVerrs || len(verrs) == 0 {
		return "", err.Error(), false
	}
	fe := verrs[0]
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		ns = ns[idx+1:]
	}
	return ns, fe.Translate(Validator().Translator), false
}
