package domain

// Persisted user documents exist in two naming conventions: the canonical
// snake_case fields this service writes, and the underscore-prefixed camelCase
// fields written by the system it replaced (e.g. "_codUser", "_username").
// UserFromDocument bridges both so old collections stay readable.

// fieldAliases maps each logical field to the document keys it may appear
// under, in lookup order.
var fieldAliases = map[string][]string{
	"code":     {"cod_user", "codUser", "_codUser"},
	"username": {"username", "_username"},
	"password": {"password", "_password"},
	"name":     {"name", "_name"},
	"surname":  {"surname", "_surname"},
	"role":     {"role", "type", "_type"},
}

// UserFromDocument builds a canonical User from an arbitrary field mapping.
// Fields that resolve under none of their known names are left zero; the
// factory never fails.
func UserFromDocument(doc map[string]any) User {
	return User{
		Code:     stringField(doc, "code"),
		Username: stringField(doc, "username"),
		Password: stringField(doc, "password"),
		Name:     stringField(doc, "name"),
		Surname:  stringField(doc, "surname"),
		Role:     stringField(doc, "role"),
	}
}

func stringField(doc map[string]any, field string) string {
	for _, key := range fieldAliases[field] {
		if v, ok := doc[key]; ok {
			if s, ok := v.(string); ok {
				return s
			}
		}
	}
	return ""
}
