package types

import (
	"fmt"

	"github.com/oklog/ulid/v2"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex adj_01HZX3K6Q9V1B8J4T6W2N5M7PA
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

const (
	UUID_PREFIX_ORDER          = "ord"
	UUID_PREFIX_LINE_ITEM      = "li"
	UUID_PREFIX_SHIPMENT       = "shp"
	UUID_PREFIX_VARIANT        = "var"
	UUID_PREFIX_PRODUCT        = "prod"
	UUID_PREFIX_ADJUSTMENT     = "adj"
	UUID_PREFIX_ENTERPRISE     = "ent"
	UUID_PREFIX_ENTERPRISE_FEE = "fee"
	UUID_PREFIX_CALCULATOR     = "calc"
	UUID_PREFIX_ORDER_CYCLE    = "oc"
	UUID_PREFIX_EXCHANGE       = "exch"
	UUID_PREFIX_TAX_RATE       = "txr"
	UUID_PREFIX_TAX_CATEGORY   = "txc"
	UUID_PREFIX_EVENT          = "event"
	UUID_PREFIX_REQUEST        = "req"
)
