// Package core provides the catalog, order ledger and summary logic for procurement orders.
//
// # Error Codes Reference
//
// This file maps technical errors to user-facing messages with codes for
// support reference. Messages are in Russian, the language of the ordering UI.
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL001 - Empty product field: name, code or unit is empty
//	VAL002 - Bad quantity: quantity is not in 1..MaxQuantity
//	VAL003 - Blank user name: rename or order with an empty name
//	VAL004 - Unknown user: user index out of range
//	VAL005 - Malformed request: body could not be parsed or failed shape checks
//	         Patterns: "invalid request"
//
// # Catalog Errors (CAT001-CAT099)
//
//	CAT001 - Duplicate code: a product with this code already exists
//	CAT002 - Unknown product: the referenced product is not in the catalog
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large          Patterns: "file too large", "request body too large"
//	FILE002 - Unreadable file         Patterns: "decode"
//	FILE003 - Unsupported format      Patterns: "unsupported file format"
//	FILE004 - No file                 Patterns: "no file provided"
//	FILE005 - Empty file              Patterns: "empty file"
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Too many requests       Patterns: "rate limit"; also ErrTooManyImports
//
// # Default Error (ERR000)
//
// Fallback when nothing matches. Check the server log for the technical error.
//
// # Matching
//
// Typed errors from this package are classified first with errors.As. Anything
// else falls through to the pattern table, matched case-insensitively with
// strings.Contains; the first matching pattern wins.
package core

import (
	"errors"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	msgEmptyField = UserMessage{
		Message: "Заполните все поля товара",
		Action:  "Укажите название, код и единицу измерения",
		Code:    "VAL001",
	}
	msgBadQuantity = UserMessage{
		Message: "Количество должно быть от 1 до 1000000",
		Action:  "Введите целое положительное число не больше 1000000",
		Code:    "VAL002",
	}
	msgBlankUser = UserMessage{
		Message: "Имя пользователя не может быть пустым",
		Action:  "Введите имя пользователя",
		Code:    "VAL003",
	}
	msgUnknownUser = UserMessage{
		Message: "Пользователь не найден",
		Action:  "Выберите пользователя из списка",
		Code:    "VAL004",
	}
	msgBadRequest = UserMessage{
		Message: "Некорректный запрос",
		Action:  "Проверьте введённые данные",
		Code:    "VAL005",
	}
	msgDuplicateCode = UserMessage{
		Message: "Товар с таким кодом уже существует",
		Action:  "Укажите другой код товара",
		Code:    "CAT001",
	}
	msgUnknownProduct = UserMessage{
		Message: "Товар не найден в каталоге",
		Action:  "Обновите каталог и выберите товар снова",
		Code:    "CAT002",
	}
	msgRateLimited = UserMessage{
		Message: "Слишком много запросов",
		Action:  "Подождите немного и повторите попытку",
		Code:    "RATE001",
	}
)

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error text (case-insensitive) to user messages.
// Specific patterns come before general ones.
var errorPatterns = []errorPattern{
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "Файл слишком большой",
			Action:  "Разделите файл на несколько частей",
			Code:    "FILE001",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "Файл слишком большой",
			Action:  "Разделите файл на несколько частей",
			Code:    "FILE001",
		},
	},
	{
		pattern: "unsupported file format",
		msg: UserMessage{
			Message: "Формат файла не поддерживается",
			Action:  "Сохраните таблицу в формате .xlsx или .csv",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "Файл не выбран",
			Action:  "Выберите файл для импорта",
			Code:    "FILE004",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "Файл пуст",
			Action:  "Загрузите таблицу со строкой заголовков и данными",
			Code:    "FILE005",
		},
	},
	{
		pattern: "decode",
		msg: UserMessage{
			Message: "Не удалось прочитать файл",
			Action:  "Проверьте формат файла",
			Code:    "FILE002",
		},
	},
	{
		pattern: "invalid request",
		msg:     msgBadRequest,
	},
	{
		pattern: "rate limit",
		msg:     msgRateLimited,
	},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "Произошла непредвиденная ошибка",
	Action:  "Повторите попытку или обратитесь в поддержку",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
//
// Example:
//
//	_, err := catalog.Add("Соль", "MK-001", "кг")
//	msg := MapError(err)
//	// msg.Code == "CAT001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		switch ve.Field {
		case FieldQuantity:
			return msgBadQuantity
		case FieldUserName:
			return msgBlankUser
		case FieldUserIndex:
			return msgUnknownUser
		case FieldName, FieldCode, FieldUnit:
			return msgEmptyField
		default:
			return msgBadRequest
		}
	}
	if errors.Is(err, ErrDuplicateCode) {
		return msgDuplicateCode
	}
	if errors.Is(err, ErrUnknownProduct) {
		return msgUnknownProduct
	}
	if errors.Is(err, ErrTooManyImports) {
		return msgRateLimited
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// IsUserFacing reports whether err maps to a specific message rather than the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
