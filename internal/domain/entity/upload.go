package entity

// StoredObject metadatos de un archivo guardado en el bucket.
type StoredObject struct {
	Path        string
	URL         string
	ContentType string
	Size        int64
}
