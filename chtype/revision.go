package chtype

// Protocol revision minimums, advertised by the server in its Hello
// response and used throughout block, proto, and session to decide
// whether an optional field is present on the wire. Shared here rather
// than duplicated in proto since chtype already carries the Type/Kind
// constants every other package imports.
const (
	RevBlockInfo            = 51903
	RevTemporaryTables      = 50264
	RevClientInfo           = 54032
	RevServerTimezone       = 54058
	RevQuotaKeyInClientInfo = 54060
	RevDisplayName          = 54372
	RevVersionPatch         = 54401
	RevWrittenRowsBytes     = 54420
	RevSettingsAsStrings    = 54429
	RevOpenTelemetry        = 54442
	RevCustomSerialization  = 54454
	RevParameters           = 54459
)
