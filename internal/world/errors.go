package world

import "errors"

var (
	// ErrNotFound is returned when a vnum or rnum does not name an entity.
	ErrNotFound = errors.New("not found")

	// ErrLoadFormat is returned for malformed or incomplete records at boot.
	ErrLoadFormat = errors.New("malformed world data")

	// ErrCapacity is returned when a population or table limit is reached.
	ErrCapacity = errors.New("capacity reached")

	// ErrTargetNotFound is returned when a command's dependent entity is missing.
	ErrTargetNotFound = errors.New("target not found")

	// ErrResetActive is returned when a zone already has a reset in progress.
	ErrResetActive = errors.New("zone reset already in progress")

	// ErrVoidRoom is returned when deleting the void room.
	ErrVoidRoom = errors.New("the void room cannot be removed")

	// ErrZoneNotEmpty is returned when deleting a zone that still owns rooms.
	ErrZoneNotEmpty = errors.New("zone still owns rooms")

	// ErrZoneOverlap is returned when a zone's vnum range overlaps another zone.
	ErrZoneOverlap = errors.New("zone range overlaps another zone")
)
