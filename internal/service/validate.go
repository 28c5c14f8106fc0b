package service

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"time"

	"hamcrew-club/internal/models"

	"github.com/go-playground/validator/v10"
)

const (
	DateLayout  = "2006-01-02"
	MonthLayout = "2006-01"
	TimeLayout  = "15:04"
)

// ValidationError - ошибка формы, показывается пользователю как есть
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

var validate = newValidator()

var (
	ymdRe     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	hhmmRe    = regexp.MustCompile(`^\d{2}:\d{2}$`)
	nonDigits = regexp.MustCompile(`\D`)
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("ymd", func(fl validator.FieldLevel) bool {
		return IsYMD(fl.Field().String())
	})
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return IsHHMM(fl.Field().String())
	})
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return ValidPhone(fl.Field().String())
	})
	_ = v.RegisterValidation("status", func(fl validator.FieldLevel) bool {
		return models.MemberStatus(fl.Field().String()).Valid()
	})
	return v
}

// ValidateStruct проверяет теги validate и возвращает первую ошибку
// в порядке полей структуры с сообщением из messages.
func ValidateStruct(s interface{}, messages map[string]string) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	msg, ok := messages[fe.Field()]
	if !ok {
		msg = fe.Field() + " 값이 올바르지 않습니다."
	}
	return NewValidationError(fe.Field(), msg)
}

// IsYMD - строка вида YYYY-MM-DD и реальная дата
func IsYMD(s string) bool {
	if !ymdRe.MatchString(s) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

func IsHHMM(s string) bool {
	if !hhmmRe.MatchString(s) {
		return false
	}
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}

// NormalizePhone оставляет только цифры
func NormalizePhone(s string) string {
	return nonDigits.ReplaceAllString(s, "")
}

// ValidPhone - 9..11 цифр после удаления всего остального
func ValidPhone(s string) bool {
	n := len(NormalizePhone(s))
	return n >= 9 && n <= 11
}

// Clock - источник текущего времени
type Clock func() time.Time

// Today - текущая дата в часовом поясе клуба
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return now.In(loc).Format(DateLayout)
}

// MonthRange - первый и последний день месяца YYYY-MM
func MonthRange(month string) (string, string, error) {
	t, err := time.Parse(MonthLayout, month)
	if err != nil {
		return "", "", err
	}
	last := t.AddDate(0, 1, -1)
	return t.Format(DateLayout), last.Format(DateLayout), nil
}
