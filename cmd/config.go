package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	TicketingBaseURL string
	TicketingToken   string
	LabelAPIURL      string
	LabelAPIKey      string

	// Warehouse address printed on shipping labels as the business party.
	BusinessName       string
	BusinessStreet     string
	BusinessCity       string
	BusinessState      string
	BusinessPostalCode string
	BusinessCountry    string
	BusinessPhone      string

	// Six-field cron expression for the re-offer auto-resolution sweep.
	ReofferSweepSchedule string
}
