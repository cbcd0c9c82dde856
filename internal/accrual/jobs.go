package accrual

// Timezone is the wall-clock zone every cadence is evaluated in.
const Timezone = "America/New_York"

// Weekly posts interest on the Kia Carnival loan every Thursday at 08:00.
var Weekly = Job{
	Name:         "Kia interest",
	Cron:         "0 8 * * 4",
	AccountID:    "a1d08c47-9e63-4f46-bd36-d4380098844c",
	PeriodicRate: 0.00133978648017598,
	CutoffDays:   1,
	NoteFormat:   "Intérêt pour 1 semaine à %s",
}

// Monthly posts interest on the Maison Proulx mortgage on the 18th at 08:00.
// The cutoff goes back one calendar month and one day; the Node job this
// replaces subtracted from the day-of-month field instead, which landed in
// the wrong period. Historical cutoffs are suspect until confirmed with the
// ledger owner.
var Monthly = Job{
	Name:         "Mortgage interest",
	Cron:         "0 8 18 * *",
	AccountID:    "eda51ae0-7510-4382-b6d7-2748ccb7f219",
	PeriodicRate: 0.003543453216552734375,
	CutoffMonths: 1,
	CutoffDays:   1,
	NoteFormat:   "Intérêt pour 1 mois à %s",
}

// Jobs returns every configured cadence.
func Jobs() []Job {
	return []Job{Weekly, Monthly}
}
