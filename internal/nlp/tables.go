package nlp

// typoTable maps common misspellings and shorthand to their canonical form.
// Lookups are case-insensitive; the table is fixed by design and small
// enough that a rule engine would be overkill.
var typoTable = map[string]string{
	"taks":    "tasks",
	"tak":     "task",
	"complte": "complete",
	"cmplete": "complete",
	"complet": "complete",
	"tod":     "todo",
	"tdo":     "todo",
	"remov":   "remove",
	"rmove":   "remove",
	"delte":   "delete",
	"delet":   "delete",
	"ad":      "add",
	"dd":      "add",
	"cretae":  "create",
	"cret":    "create",
	"lst":     "list",
	"lis":     "list",
	"shw":     "show",
	"sho":     "show",
	"edt":     "edit",
	"edti":    "edit",
	"updte":   "update",
	"updat":   "update",
	"finsh":   "finish",
	"fnish":   "finish",
	"don":     "done",
	"dn":      "done",
	"tmrw":    "tomorrow",
	"tmrrow":  "tomorrow",
	"tdy":     "today",
	"tdya":    "today",
	"hr":      "hour",
	"hrs":     "hours",
	"mnt":     "minute",
	"mnts":    "minutes",
	"wk":      "week",
	"wks":     "weeks",
	"mnth":    "month",
	"mnths":   "months",
	"yr":      "year",
	"yrs":     "years",
	"prsnl":   "personal",
	"wrk":     "work",
	"shpng":   "shopping",
	"hlth":    "health",
	"fnnce":   "finance",
	"othr":    "other",
	"hgh":     "high",
	"medum":   "medium",
	"lw":      "low",
}

// synonymTable maps a canonical word to the alternatives users write instead.
var synonymTable = map[string][]string{
	"add":      {"create", "new", "make"},
	"complete": {"done", "finish", "accomplish"},
	"delete":   {"remove", "kill", "eliminate"},
	"list":     {"show", "view", "display"},
	"edit":     {"update", "modify", "change"},
	"task":     {"todo", "item", "reminder", "note"},
	"tomorrow": {"tmrw"},
	"today":    {"tdy"},
	"work":     {"job", "office", "career"},
	"personal": {"private", "my", "me"},
	"shopping": {"buy", "purchase", "grocery"},
	"health":   {"medical", "fitness", "exercise"},
	"finance":  {"money", "budget", "financial"},
	"high":     {"urgent", "important", "critical"},
	"medium":   {"normal", "standard", "regular"},
	"low":      {"optional", "minor", "trivial"},
}
