package cmd

const (
	CONFIRM_FLAG     = "confirm"
	NOTIFICATOR_FLAG = "notificator"
	REPORTS_FLAG     = "reports"
	WEI_FLAG         = "wei"
)
