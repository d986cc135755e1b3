package share

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
)

// Record is one pending URL share. Producers (e.g. a phone share-sheet
// shortcut) write url/createdAt/expiredAt/delivered; the consumer fills
// ID from the document ref and flips delivered when it retires the record.
type Record struct {
	ID          string     `firestore:"-" json:"id"`
	URL         string     `firestore:"url" json:"url"`
	CreatedAt   time.Time  `firestore:"createdAt" json:"createdAt"`
	ExpiredAt   time.Time  `firestore:"expiredAt" json:"expiredAt"`
	Delivered   bool       `firestore:"delivered" json:"delivered"`
	DeliveredAt *time.Time `firestore:"deliveredAt,omitempty" json:"deliveredAt,omitempty"`
}

// FromDoc decodes a document snapshot into a Record. The url field is
// percent-decoded (share-sheet producers encode it) and must parse as an
// absolute URL; anything else is ErrParse so callers skip-and-log instead
// of crashing on a malformed document.
func FromDoc(doc *firestore.DocumentSnapshot) (Record, error) {
	var r Record
	if err := doc.DataTo(&r); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	r.ID = doc.Ref.ID

	decoded, err := DecodeURL(r.URL)
	if err != nil {
		return Record{}, err
	}
	r.URL = decoded

	return r, nil
}

// DecodeURL percent-decodes and validates a stored URL.
func DecodeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: missing url", ErrParse)
	}

	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("%w: undecodable url %q", ErrParse, raw)
	}

	u, err := url.Parse(decoded)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return "", fmt.Errorf("%w: malformed url %q", ErrParse, decoded)
	}

	return decoded, nil
}
