package glossary

import "github.com/ezchajim/azilut/internal/model"

// New builds a validated table from in-memory rules. Rule order within a
// category is preserved; categories are applied in their fixed order.
func New(version string, rules map[model.Category][]model.Rule) (*Table, error) {
	return build(version, rules)
}

// Default returns the built-in rule table. It carries the complete
// approved glossary: terminology repairs (K to Q), lexical repairs of
// destructive verb groups, and DIN 31636 transliteration variants.
func Default() *Table {
	table, err := build("5785.22.3", map[model.Category][]model.Rule{
		model.CategoryTerminology: {
			{Pattern: "WWAK", Replacement: "WWAQ"},
			{Pattern: "Kabbala", Replacement: "Qabbala"},
			{Pattern: "Kabbalah", Replacement: "Qabbala"},
			{Pattern: "kabbalistisch", Replacement: "qabbalistisch"},
			{Pattern: "Kabbalisten", Replacement: "Qabbalisten"},
			{Pattern: "Kabbalist", Replacement: "Qabbalist"},
			{Pattern: "Kawana", Replacement: "Qawana"},
			{Pattern: "Kavanah", Replacement: "Qawana"},
			{Pattern: "Kavana", Replacement: "Qawana"},
		},
		model.CategoryLexicalRepair: {
			// bersten group
			{Pattern: "zerbrechen", Replacement: "bersten"},
			{Pattern: "zerbrach", Replacement: "barst"},
			{Pattern: "zerbrachen", Replacement: "barsten"},
			{Pattern: "zerbricht", Replacement: "berstet"},
			{Pattern: "zerbrochen", Replacement: "geborsten"},
			{Pattern: "Zerbrechen", Replacement: "Bersten"},
			{Pattern: "Zerbruch", Replacement: "Bersten"},
			// wandeln group
			{Pattern: "zerstören", Replacement: "wandeln"},
			{Pattern: "zerstört", Replacement: "gewandelt"},
			{Pattern: "zerstörte", Replacement: "wandelte"},
			{Pattern: "zerstörten", Replacement: "wandelten"},
			{Pattern: "zerstörend", Replacement: "wandelnd"},
			{Pattern: "Zerstörung", Replacement: "Wandlung"},
			// öffnen group
			{Pattern: "zerreißen", Replacement: "öffnen"},
			{Pattern: "zerriss", Replacement: "öffnete"},
			{Pattern: "zerrissen", Replacement: "geöffnet"},
			{Pattern: "zerreißt", Replacement: "öffnet"},
			{Pattern: "zerschlagen", Replacement: "öffnen"},
			{Pattern: "zerschlug", Replacement: "öffnete"},
			{Pattern: "zerschlägt", Replacement: "öffnet"},
			// sich wandeln group
			{Pattern: "zerfallen", Replacement: "sich wandeln"},
			{Pattern: "zerfällt", Replacement: "wandelt sich"},
			{Pattern: "zerfiel", Replacement: "wandelte sich"},
			{Pattern: "zerfielen", Replacement: "wandelten sich"},
			// schwinden group
			{Pattern: "verschwinden", Replacement: "schwinden"},
			{Pattern: "verschwand", Replacement: "schwand"},
			{Pattern: "verschwunden", Replacement: "geschwunden"},
		},
		model.CategoryTransliteration: {
			{Pattern: "Tzimtzum", Replacement: "Zimzum"},
			{Pattern: "Tzimzum", Replacement: "Zimzum"},
			{Pattern: "Dvekut", Replacement: "Dwekut"},
			{Pattern: "Devekut", Replacement: "Dwekut"},
			{Pattern: "Tikkun", Replacement: "Tiqqun"},
			{Pattern: "Tikun", Replacement: "Tiqqun"},
			{Pattern: "Atzilut", Replacement: "Azilut"},
			{Pattern: "Atziluth", Replacement: "Azilut"},
		},
	})
	if err != nil {
		// The built-in table is validated by tests; reaching this is a bug.
		panic(err)
	}
	return table
}
