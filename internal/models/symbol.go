package models

// SymbolAbsent marks an absence; it overwrites the prior symbol when a
// schedule entry is marked absent.
const SymbolAbsent = "欠"

// symbolCatalog maps each schedule symbol to its canonical description.
// Descriptions are always derived from this table, never taken from an
// imported description column.
var symbolCatalog = map[string]string{
	"学":  "学校登校日",
	"数":  "数学セミナー",
	"〇":  "病院実習当日",
	"半":  "半日実習",
	"オリ": "オリエンテーション",
	"明":  "実習明け",
	"欠":  "欠席",
}

// DescribeSymbol returns the canonical description for a symbol. Unknown
// symbols echo back unchanged so novel codes survive a round trip.
func DescribeSymbol(symbol string) string {
	if description, ok := symbolCatalog[symbol]; ok {
		return description
	}
	return symbol
}

// SymbolCatalog returns a copy of the symbol vocabulary.
func SymbolCatalog() map[string]string {
	catalog := make(map[string]string, len(symbolCatalog))
	for symbol, description := range symbolCatalog {
		catalog[symbol] = description
	}
	return catalog
}
