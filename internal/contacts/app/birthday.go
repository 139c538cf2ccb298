package app

import (
	"time"

	"contactdir/internal/contacts/domain/entities"
)

// nextOccurrence помещает день рождения в указанный год. 29 февраля в
// невисокосные годы прижимается к 28 февраля; time.Date иначе нормализовал бы
// его к 1 марта и сдвинул день рождения на день позже.
func nextOccurrence(birthday time.Time, year int) time.Time {
	month, day := birthday.Month(), birthday.Day()
	if month == time.February && day == 29 && !isLeapYear(year) {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysUntilBirthday возвращает число дней от сегодня до ближайшего дня
// рождения. Ноль означает день рождения сегодня. Учитываются только месяц
// и день.
func DaysUntilBirthday(birthday, today time.Time) int {
	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	occurrence := nextOccurrence(birthday, todayDate.Year())
	delta := int(occurrence.Sub(todayDate).Hours() / 24)
	if delta < 0 {
		occurrence = nextOccurrence(birthday, todayDate.Year()+1)
		delta = int(occurrence.Sub(todayDate).Hours() / 24)
	}
	return delta
}

// FilterUpcomingBirthdays возвращает контакты, чей ближайший день рождения
// попадает в [today, today+shift]. Граница включительная. Линейный проход по
// всем записям; приемлемо на масштабе справочника.
func FilterUpcomingBirthdays(shift int, today time.Time, contacts []*entities.Contact) []*entities.Contact {
	upcoming := make([]*entities.Contact, 0)
	for _, contact := range contacts {
		if DaysUntilBirthday(contact.Birthday, today) <= shift {
			upcoming = append(upcoming, contact)
		}
	}
	return upcoming
}
