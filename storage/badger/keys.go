package badger

import (
	"fmt"

	"github.com/poiesic/answerit/core"
)

// Key prefixes for different data types
const (
	passagePrefix    = "pasrec"
	passageDocPrefix = "pasdoc"
)

// makePassageKey generates a key for a passage by ID.
func makePassageKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", passagePrefix, id))
}

// makePassageDocKey generates a composite key for the document index.
// Format: prefix:document:id
func makePassageDocKey(document string, id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%s:%d", passageDocPrefix, document, id))
}

// makePartialDocKey generates a prefix for scanning one document's passages.
func makePartialDocKey(document string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", passageDocPrefix, document))
}
