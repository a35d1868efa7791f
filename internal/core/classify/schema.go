package classify

import (
	"fmt"
	"strings"
	"time"

	"github.com/arunima26vats/CosmicStack/internal/core/domain"
)

// entityTimeLayout renders minute precision; the content hash disambiguates
// payloads landing in the same minute.
const entityTimeLayout = "200601021504"

var dateNameKeywords = []string{"date", "time", "created_at", "timestamp"}

// EntityName builds the deterministic storage identity for a structured
// payload: a timestamp component for humans plus a content hash prefix for
// collision resistance.
func EntityName(payload domain.Value, now time.Time) string {
	return fmt.Sprintf("data_batch_%s_%s", now.Format(entityTimeLayout), payload.ContentHash(10))
}

// SynthesizeSchema infers a column schema from the representative item of a
// structured payload: the first element of a batch, otherwise the payload
// itself. Inference is single-sample; later batch items with divergent field
// types are not consulted.
func SynthesizeSchema(payload domain.Value) domain.SchemaDescriptor {
	item := representative(payload)

	var fields []domain.SchemaField
	if item.Kind == domain.KindObject {
		for _, m := range item.Members {
			fields = append(fields, domain.SchemaField{Name: m.Key, Type: inferFieldType(m.Key, m.Value)})
		}
	}
	if len(fields) == 0 {
		// A representative that is not an object (or has no members) still
		// gets a well-formed single-column schema.
		fields = []domain.SchemaField{{Name: "value", Type: domain.TypeText}}
	}

	table := "analyzed_table_" + item.ContentHash(6)

	cols := make([]string, 0, len(fields))
	for _, f := range fields {
		cols = append(cols, f.Name+" "+string(f.Type))
	}
	ddl := fmt.Sprintf("CREATE TABLE %s (ID INTEGER PRIMARY KEY, %s);", table, strings.Join(cols, ", "))

	return domain.SchemaDescriptor{
		TableName: table,
		Fields:    fields,
		DDL:       ddl,
	}
}

func representative(v domain.Value) domain.Value {
	if v.Kind == domain.KindArray && len(v.Items) > 0 {
		return v.Items[0]
	}
	return v
}

// inferFieldType applies the type rules in order. Booleans are a distinct
// value kind, so a true/false field can never be mistaken for an integer.
func inferFieldType(name string, v domain.Value) domain.FieldType {
	switch v.Kind {
	case domain.KindBool:
		return domain.TypeBoolean
	case domain.KindNumber:
		if v.IsInteger() {
			return domain.TypeInteger
		}
		return domain.TypeReal
	case domain.KindString:
		lower := strings.ToLower(name)
		for _, kw := range dateNameKeywords {
			if strings.Contains(lower, kw) {
				return domain.TypeTimestamp
			}
		}
		return domain.TypeVarchar
	default:
		return domain.TypeText
	}
}
