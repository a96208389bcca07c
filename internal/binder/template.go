package binder

// Template describes a physical binder shape. Templates are immutable catalog
// data used only to construct new layouts.
type Template struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Rows    int    `json:"rows"`
	Cols    int    `json:"cols"`
	MaxPage int    `json:"maxPage,omitempty"`
	Default bool   `json:"default"`
}

// BuiltinTemplates returns the template catalog shipped with the application.
// The storage layer seeds these into the database on first migration.
func BuiltinTemplates() []Template {
	return []Template{
		{ID: "standard-9", Name: "Standard 9-Pocket", Rows: 3, Cols: 3, MaxPage: 40, Default: true},
		{ID: "compact-4", Name: "Compact 4-Pocket", Rows: 2, Cols: 2, MaxPage: 30},
		{ID: "jumbo-12", Name: "Jumbo 12-Pocket", Rows: 3, Cols: 4, MaxPage: 50},
		{ID: "premium-9", Name: "Premium 9-Pocket Zippered", Rows: 3, Cols: 3, MaxPage: 60},
	}
}

// TemplateByID looks a template up in the builtin catalog.
func TemplateByID(id string) (Template, error) {
	for _, tmpl := range BuiltinTemplates() {
		if tmpl.ID == id {
			return tmpl, nil
		}
	}
	return Template{}, &TemplateNotFoundError{ID: id}
}

// DefaultTemplate returns the catalog's default binder shape.
func DefaultTemplate() Template {
	for _, tmpl := range BuiltinTemplates() {
		if tmpl.Default {
			return tmpl
		}
	}
	return BuiltinTemplates()[0]
}
