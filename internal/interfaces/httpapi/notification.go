package httpapi

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type notificationKind string

const (
	notifySuccess notificationKind = "success"
	notifyError   notificationKind = "error"
	notifyInfo    notificationKind = "info"
)

// notification is the toast the console shows after a request.
type notification struct {
	Kind    notificationKind `json:"kind"`
	Message string           `json:"message"`
}

type dialogSize string

const (
	dialogSmall  dialogSize = "sm"
	dialogMedium dialogSize = "md"
	dialogLarge  dialogSize = "lg"
	dialogXL     dialogSize = "xl"
	dialogFull   dialogSize = "full"
)

type dialog struct {
	Title string     `json:"title"`
	Size  dialogSize `json:"size"`
}

type action int

const (
	actionCreate action = iota
	actionUpdate
	actionDelete
)

var (
	infinitives = map[action]string{actionCreate: "crear", actionUpdate: "actualizar", actionDelete: "eliminar"}
	participles = map[action]string{actionCreate: "cread", actionUpdate: "actualizad", actionDelete: "eliminad"}
)

// entity is a Spanish noun with its grammatical gender.
type entity struct {
	noun     string
	feminine bool
	size     dialogSize
}

var (
	entitySeason   = entity{noun: "temporada", feminine: true, size: dialogSmall}
	entityDivision = entity{noun: "división", feminine: true, size: dialogSmall}
	entityCategory = entity{noun: "categoría", feminine: true, size: dialogMedium}
	entityField    = entity{noun: "campo", size: dialogLarge}
	entityTeam     = entity{noun: "equipo", size: dialogLarge}
	entityPlayer   = entity{noun: "jugador", size: dialogLarge}
	entityMatch    = entity{noun: "partido", size: dialogMedium}
	entityPayment  = entity{noun: "pago", size: dialogSmall}
	entityReferee  = entity{noun: "árbitro", size: dialogSmall}
	entityCalendar = entity{noun: "calendario", size: dialogXL}
)

// formEntities are the dialogs served by GET /v1/forms/{entity}.
var formEntities = map[string]entity{
	"seasons":    entitySeason,
	"divisions":  entityDivision,
	"categories": entityCategory,
	"fields":     entityField,
	"teams":      entityTeam,
	"players":    entityPlayer,
	"matches":    entityMatch,
	"payments":   entityPayment,
	"referees":   entityReferee,
	"calendars":  entityCalendar,
}

func (e entity) succeeded(a action) notification {
	suffix := "o"
	if e.feminine {
		suffix = "a"
	}
	return notification{Kind: notifySuccess, Message: capitalize(e.noun) + " " + participles[a] + suffix}
}

func (e entity) failed(a action) notification {
	return notification{Kind: notifyError, Message: "Error al " + infinitives[a] + " " + e.noun}
}

func (e entity) dialog(editing bool) dialog {
	if editing {
		return dialog{Title: "Editar " + e.noun, Size: e.size}
	}
	prefix := "Nuevo "
	if e.feminine {
		prefix = "Nueva "
	}
	return dialog{Title: prefix + e.noun, Size: e.size}
}

func infoNote(message string) notification {
	return notification{Kind: notifyInfo, Message: message}
}

func successNote(message string) notification {
	return notification{Kind: notifySuccess, Message: message}
}

func errorNote(message string) notification {
	return notification{Kind: notifyError, Message: message}
}

func capitalize(value string) string {
	r, size := utf8.DecodeRuneInString(value)
	if r == utf8.RuneError {
		return value
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(value[size:])
}
