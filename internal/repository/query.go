package repository

var pollColumns = []string{
	"id",
	"payment_id",
	"order_id",
	"amount",
	"outcome",
	"final_state",
	"remote_status",
	"attempts",
	"error",
	"started_at",
	"finished_at",
}

const pollsTable = "payment_status_polls"
