package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList хранит список строк как jsonb.
// Контракт границы: на записи список сериализуется в JSON-массив,
// на чтении десериализуется обратно. Битое содержимое колонки не
// роняет запрос - вместо ошибки возвращается сырое значение как
// единственный элемент списка.
type StringList []string

// Value реализует driver.Valuer
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan реализует sql.Scanner
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", value)
	}

	if len(raw) == 0 {
		*l = StringList{}
		return nil
	}

	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		// Fallback: сырое значение одним элементом, запрос не падает
		*l = StringList{string(raw)}
		return nil
	}

	if items == nil {
		items = []string{}
	}
	*l = items
	return nil
}

// GormDataType сообщает GORM тип колонки
func (StringList) GormDataType() string {
	return "jsonb"
}
