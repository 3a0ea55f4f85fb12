package validators

import (
	"reflect"
	"strconv"
	"strings"

	"lms/middleware"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gofiber/fiber/v2"
)

var (
	validate   = validator.New()
	translator ut.Translator
)

func init() {
	translator, _ = ut.New(en.New()).GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation("option", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "A", "B", "C", "D", "E":
			return true
		}
		return false
	})
	_ = validate.RegisterTranslation("option", translator,
		func(t ut.Translator) error {
			return t.Add("option", "{0} must be one of A, B, C, D or E", true)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T("option", fe.Field())
			return s
		},
	)
}

// Struct validates reqData and returns a field -> message map, keyed by the
// JSON path of the field. A nil map means the request is valid.
func Struct(reqData interface{}) map[string]string {
	err := validate.Struct(reqData)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"request": err.Error()}
	}

	errors := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		// Namespace is "<Struct>.<json path>"; drop the struct name.
		key := fe.Namespace()
		if i := strings.Index(key, "."); i >= 0 {
			key = key[i+1:]
		}
		errors[key] = fe.Translate(translator)
	}
	return errors
}

// ParseBody parses the JSON body into reqData and validates it. On failure
// the error response has already been written and ok is false.
func ParseBody(c *fiber.Ctx, reqData interface{}) (bool, error) {
	if err := c.BodyParser(reqData); err != nil {
		return false, middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	if errors := Struct(reqData); errors != nil {
		return false, middleware.ValidationErrorResponse(c, errors)
	}
	return true, nil
}

// ParamID reads a positive integer route parameter.
func ParamID(c *fiber.Ctx, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Params(name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
