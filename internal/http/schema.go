package http

import (
	_ "embed"
)

//go:embed schemas/transaction_update.schema.json
var txUpdateSchema []byte
