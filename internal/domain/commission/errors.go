package commission

import "errors"

var (
	ErrPolicyNotFound       = errors.New("commission policy not found")
	ErrRecordNotFound       = errors.New("commission record not found")
	ErrRecordAlreadyPaid    = errors.New("commission record already paid")
	ErrInvalidRate          = errors.New("commission rate must be between 0 and 100")
	ErrInvalidDays          = errors.New("day window must not be negative")
	ErrInstallerRequired    = errors.New("installer ID is required")
	ErrInvalidCommissionType = errors.New("invalid commission type")
)
