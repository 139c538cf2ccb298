package entities

import (
	"errors"
	"fmt"
)

// ErrUnknownSearchField возвращается, когда строка поля поиска вне закрытого
// набора. Неизвестные поля отклоняются на границе, а не молча ничего не находят.
var ErrUnknownSearchField = errors.New("unknown search field")

// SearchField - закрытый набор атрибутов контакта, доступных как ключ поиска.
type SearchField string

// Поддерживаемые поля поиска.
const (
	SearchFirstName SearchField = "firstname"
	SearchLastName  SearchField = "lastname"
	SearchEmail     SearchField = "email"
	SearchPhone     SearchField = "phone"
)

// ParseSearchField проверяет строку поля поиска по закрытому набору.
func ParseSearchField(s string) (SearchField, error) {
	switch SearchField(s) {
	case SearchFirstName, SearchLastName, SearchEmail, SearchPhone:
		return SearchField(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSearchField, s)
	}
}

func (f SearchField) String() string {
	return string(f)
}
