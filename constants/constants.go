package constants

const (
	DRIPPAY_REPOSITORY = "drip-capital/drippay"

	CODENAME = "drippay"
	VERSION  = "0.3.1"

	WEI_FACTOR  = 1000000000000000000
	GWEI_FACTOR = 1000000000

	// amount dispensed per payout - 0.00001 ETH
	DRIP_AMOUNT_WEI = int64(10000000000000)

	// minimum cost of a simple native transfer
	TRANSFER_GAS_LIMIT = uint64(21000)

	// conservative fallback used when the node does not report fee data
	FALLBACK_BASE_FEE_GWEI = int64(10)
	PRIORITY_FEE_GWEI      = int64(1)

	DEFAULT_RPC_URL               = "https://rpc.ankr.com/arbitrum"
	DEFAULT_EXPLORER_URL          = "https://arbiscan.io/"
	DEFAULT_CONFIRMATION_TIMEOUT  = 300 // seconds
	DEFAULT_CONFIRMATION_INTERVAL = 5   // seconds

	PAID_ADDRESSES_FILE_NAME      = "paid_addresses.json"
	WHITELIST_FILE_NAME           = "whitelisted_identities.json"
	PENDING_INTENTS_FILE_NAME     = "pending_intents.json"
	DISBURSEMENT_REPORT_FILE_NAME = "disbursements.csv"
	RECORDS_DIRECTORY             = "records"

	CONFIG_FILE_NAME = "config.hjson"
)
