package page

// Prompts and alerts shown to the person at the sheet.
const (
	PromptPlayerName = "Spillerns navn?:"
	PromptGameName   = "Spillets navn?:"

	AlertBlankPlayer   = "Kom igjen da, ikke vær teit."
	AlertBlankGame     = "Kom igjen da, et skikkelig navn takk!"
	AlertDuplicateGame = "Dust! dette spillet finnes allerede!"
	AlertNotReady      = "Grid or date is not ready!"
	AlertSendOK        = "Data ble sendt tilbake, ser det ut som!"
	AlertSendFailed    = "Det der gikk ikke!"
)
