package dashboard

import "habitual/internal/model"

// DemoHabits is the fixed dataset shown when the backend is unavailable.
func DemoHabits() []model.Habit {
	return []model.Habit{
		{ID: "1", Name: "Drink 8 glasses of water", Status: model.StatusDone},
		{ID: "2", Name: "Exercise for 30 minutes", Status: model.StatusNone},
		{ID: "3", Name: "Read for 20 minutes", Status: model.StatusMissed},
	}
}
