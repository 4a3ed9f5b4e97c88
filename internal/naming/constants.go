package naming

// SchemaItemAliases is the schema identifier for item alias configuration
const SchemaItemAliases = "item-aliases"

// RarityFormatTemplate formats a display name with a rarity prefix,
// "<Rarity> <Item Name>"
const RarityFormatTemplate = "%s %s"

const (
	ErrContextFailedToLoadAliases = "failed to load aliases"
	ErrContextFailedToParseConfig = "failed to parse config %s"
)

const (
	ErrMsgMissingVersionField = "%s missing version field"
	ErrMsgInvalidSchema       = "invalid schema in %s: expected '%s', got '%s'"
)
