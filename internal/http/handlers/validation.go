package handlers

import (
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	validatorOnce sync.Once
	translator    ut.Translator
)

// custom validation tags & texts
const (
	isoDateTag  = "isodate"
	isoDateText = "{0} must be a calendar date in YYYY-MM-DD format"
)

// RegisterValidators installs the custom rules and English messages on gin's
// validator. Safe to call more than once.
func RegisterValidators() {
	validatorOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		_en := en.New()
		uni := ut.New(_en, _en)
		translator, _ = uni.GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(v, translator)

		// Use JSON tag names in messages instead of Go struct names.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		_ = v.RegisterValidation(isoDateTag, isoDate)
		_ = v.RegisterTranslation(isoDateTag, translator,
			func(t ut.Translator) error { return t.Add(isoDateTag, isoDateText, false) },
			func(t ut.Translator, fe validator.FieldError) string {
				s, _ := t.T(isoDateTag, fe.Field())
				return s
			},
		)
	})
}

func isoDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(time.DateOnly, fl.Field().String())
	return err == nil
}

func translate(fe validator.FieldError) string {
	if translator == nil {
		return ""
	}
	msg := fe.Translate(translator)
	// untranslated tags come back as the raw error text
	if strings.HasPrefix(msg, "Key: ") {
		return ""
	}
	return msg
}
