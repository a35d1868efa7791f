package domain

import "time"

// ArtifactKind distinguishes the two intake branches.
type ArtifactKind string

const (
	ArtifactMedia      ArtifactKind = "media"
	ArtifactStructured ArtifactKind = "structured"
)

// StorageShape is the structural verdict for a structured payload.
type StorageShape string

const (
	ShapeRelational StorageShape = "relational"
	ShapeDocument   StorageShape = "document"
)

// ShapeReason records how a shape verdict was reached.
type ShapeReason string

const (
	ShapeForced    ShapeReason = "forced by comment"
	ShapeHeuristic ShapeReason = "heuristic"
)

// ShapeDecision pairs a storage shape with the reason it was selected.
type ShapeDecision struct {
	Shape  StorageShape `json:"shape"`
	Reason ShapeReason  `json:"reason"`
}

// Describe renders the verdict for narratives, e.g. "relational (heuristic)".
func (d ShapeDecision) Describe() string {
	shape := string(d.Shape)
	if d.Shape == ShapeDocument {
		shape = "document-oriented"
	}
	return shape + " (" + string(d.Reason) + ")"
}

// FieldType is the closed set of inferred column types.
type FieldType string

const (
	TypeInteger   FieldType = "INTEGER"
	TypeReal      FieldType = "REAL"
	TypeBoolean   FieldType = "BOOLEAN"
	TypeTimestamp FieldType = "TIMESTAMP"
	TypeVarchar   FieldType = "VARCHAR(255)"
	TypeText      FieldType = "TEXT"
)

// SchemaField is one column of a synthesized schema.
type SchemaField struct {
	Name string    `json:"name"`
	Type FieldType `json:"type"`
}

// SchemaDescriptor describes the virtual table synthesized for a
// relational-shaped payload. Fields keep the representative item's key order.
type SchemaDescriptor struct {
	TableName string        `json:"table_name"`
	Fields    []SchemaField `json:"fields"`
	DDL       string        `json:"ddl"`
}

// MediaSubmission carries one uploaded binary artifact through routing.
type MediaSubmission struct {
	Filename string
	Data     []byte
	Comment  string
	Compress bool
}

// StructuredSubmission carries one raw JSON payload through routing.
type StructuredSubmission struct {
	Payload  []byte
	Comment  string
	Compress bool
}

// RoutingDecision is the immutable record of where an artifact went and why.
type RoutingDecision struct {
	ID          string            `json:"id"`
	Kind        ArtifactKind      `json:"kind"`
	Category    string            `json:"category"`
	FileName    string            `json:"filename"`
	StoragePath string            `json:"storage_path"`
	Transforms  []string          `json:"transforms,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Entity      string            `json:"entity,omitempty"`
	Shape       *ShapeDecision    `json:"shape,omitempty"`
	Schema      *SchemaDescriptor `json:"schema,omitempty"`
	SchemaText  string            `json:"schema_text,omitempty"`
	Narrative   string            `json:"narrative"`
	CreatedAt   time.Time         `json:"created_at"`
}

// ObjectInfo describes one stored object during storage scans.
type ObjectInfo struct {
	Key     string
	Size    int64
	ModTime time.Time
}

// ImageInfo summarizes decoded image bytes for tag extraction. Channel means
// are computed over a fixed-size downsample, not the full raster.
type ImageInfo struct {
	Width     int
	Height    int
	MeanRed   float64
	MeanGreen float64
	MeanBlue  float64
}

// StorageStats is the dashboard snapshot of the object store.
type StorageStats struct {
	StorageUsed    string `json:"storage_used"`
	StorageTotal   string `json:"storage_total"`
	FilesProcessed int    `json:"files_processed"`
	LastUpload     string `json:"last_upload"`
}

// FileSummary is one row of the recent-files dashboard listing.
type FileSummary struct {
	Name      string    `json:"name"`
	Size      string    `json:"size"`
	Type      string    `json:"type"`
	Category  string    `json:"category"`
	Timestamp time.Time `json:"timestamp"`
}
