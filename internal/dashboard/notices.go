package dashboard

import (
	"fmt"

	"habitual/internal/notify"
)

type op string

const (
	opLoad   op = "load"
	opCreate op = "create"
	opUpdate op = "update"
	opDelete op = "delete"
)

const connectHint = "Connect your API for persistence."

func noticeFor(op op, out Outcome, n int) (notify.Notice, bool) {
	switch op {
	case opLoad:
		switch out {
		case OutcomeSynced:
			return notify.Notice{Kind: notify.KindSuccess, Title: "Loaded", Description: habitCount(n)}, true
		case OutcomeDemo:
			return notify.Notice{Kind: notify.KindDemo, Title: "Demo Mode", Description: "Using mock data. Connect your backend API for full functionality."}, true
		case OutcomeFallback:
			return notify.Notice{Kind: notify.KindError, Title: "Demo Mode", Description: "Backend unreachable. Using mock data. Connect your backend API for full functionality."}, true
		}
	case opCreate:
		switch out {
		case OutcomeSynced:
			return notify.Notice{Kind: notify.KindSuccess, Title: "Success", Description: "Habit added successfully!"}, true
		case OutcomeDemo:
			return notify.Notice{Kind: notify.KindDemo, Title: "Success (Demo Mode)", Description: "Habit added to local demo data!"}, true
		case OutcomeFallback:
			return notify.Notice{Kind: notify.KindError, Title: "Added (Demo Mode)", Description: "Habit added locally. " + connectHint}, true
		}
	case opUpdate:
		switch out {
		case OutcomeSynced:
			return notify.Notice{Kind: notify.KindSuccess, Title: "Success", Description: "Habit status updated!"}, true
		case OutcomeDemo:
			return notify.Notice{Kind: notify.KindDemo, Title: "Updated (Demo Mode)", Description: "Habit status updated locally!"}, true
		case OutcomeFallback:
			return notify.Notice{Kind: notify.KindError, Title: "Updated (Demo Mode)", Description: "Status updated locally. " + connectHint}, true
		}
	case opDelete:
		switch out {
		case OutcomeSynced:
			return notify.Notice{Kind: notify.KindSuccess, Title: "Success", Description: "Habit deleted successfully!"}, true
		case OutcomeDemo:
			return notify.Notice{Kind: notify.KindDemo, Title: "Deleted (Demo Mode)", Description: "Habit removed from local demo data!"}, true
		case OutcomeFallback:
			return notify.Notice{Kind: notify.KindError, Title: "Deleted (Demo Mode)", Description: "Habit removed locally. " + connectHint}, true
		}
	}
	return notify.Notice{}, false
}

func habitCount(n int) string {
	if n == 1 {
		return "1 habit"
	}
	return fmt.Sprintf("%d habits", n)
}
