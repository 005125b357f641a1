package utils

import (
	"DentalClinic/models"
	"errors"
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"
)

var (
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters long")
	ErrPasswordNotComplex = errors.New("password must include at least one uppercase letter, one lowercase letter, one digit, and one special character")
	ErrNotPositive        = errors.New("must be greater than zero")
	ErrNegative           = errors.New("must not be negative")
)

var (
	lowercaseRegex = regexp.MustCompile(`[a-z]`)
	uppercaseRegex = regexp.MustCompile(`[A-Z]`)
	digitRegex     = regexp.MustCompile(`\d`)
	specialRegex   = regexp.MustCompile(`[@$!%*?&]`)
)

var (
	sexes               = []interface{}{models.SexMale, models.SexFemale}
	orderStatuses       = []interface{}{models.OrderActive, models.OrderInactive}
	appointmentStatuses = []interface{}{models.AppointmentScheduled, models.AppointmentCompleted, models.AppointmentCancelled}
)

func ValidatePatient(p models.Patient) error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.CardNumber, validation.Required, validation.Length(1, 50)),
		validation.Field(&p.FirstName, validation.Required, validation.Length(3, 50)),
		validation.Field(&p.Age, validation.Required, validation.Min(1), validation.Max(150)),
		validation.Field(&p.Sex, validation.Required, validation.In(sexes...)),
		validation.Field(&p.PhoneNumber, validation.Length(0, 30)),
	)
}

func ValidateOrderInput(in models.OrderInput) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.DoctorID, validation.Required),
		validation.Field(&in.Status, validation.Required, validation.In(orderStatuses...)),
	)
}

// ValidateOrderStatus rejects anything outside Active and Inactive.
func ValidateOrderStatus(status string) error {
	return validation.Validate(status, validation.Required, validation.In(orderStatuses...))
}

func ValidateAppointmentInput(in models.AppointmentInput) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.AppointmentDate, validation.Required, validation.By(validDay)),
		validation.Field(&in.AppointmentTime, validation.Required, validation.Length(1, 20)),
		validation.Field(&in.Status, validation.Required, validation.In(appointmentStatuses...)),
		validation.Field(&in.DoctorID, validation.Required),
	)
}

func ValidateAppointment(a models.Appointment) error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.AppointmentTime, validation.Required, validation.Length(1, 20)),
		validation.Field(&a.Status, validation.Required, validation.In(appointmentStatuses...)),
	)
}

func ValidateMedicalFinding(m models.MedicalFinding) error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.ChiefComplaint, validation.Required, validation.Length(1, 2000)),
	)
}

func ValidateHealthInfo(h models.HealthInfo) error {
	return validation.ValidateStruct(&h,
		validation.Field(&h.BloodGroup, validation.In(models.BloodGroups...)),
		validation.Field(&h.Weight, validation.Length(0, 20)),
		validation.Field(&h.Height, validation.Length(0, 20)),
	)
}

func ValidateImage(i models.Image) error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.ImagePath, validation.Required, validation.Length(1, 500)),
	)
}

func ValidateCard(c models.Card) error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.CardPrice, validation.By(positiveAmount)),
	)
}

func ValidateInvoiceInput(in models.InvoiceInput) error {
	if err := validation.ValidateStruct(&in,
		validation.Field(&in.Items, validation.Required),
		validation.Field(&in.Status, validation.Required, validation.In(models.InvoiceStatuses...)),
		validation.Field(&in.CurrentPayment, validation.By(nonNegativeAmount)),
	); err != nil {
		return err
	}

	errs := validation.Errors{}
	for i := range in.Items {
		item := in.Items[i]
		err := validation.ValidateStruct(&item,
			validation.Field(&item.ServiceID, validation.Required),
			validation.Field(&item.Quantity, validation.Required, validation.Min(1)),
			validation.Field(&item.Price, validation.By(nonNegativeAmount)),
		)
		if err != nil {
			errs[fmt.Sprintf("items[%d]", i)] = err
		}
	}
	return errs.Filter()
}

func ValidateInvoiceStatus(status string) error {
	return validation.Validate(status, validation.Required, validation.In(models.InvoiceStatuses...))
}

func ValidateExpense(e models.Expense) error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Description, validation.Required, validation.Length(1, 1000)),
		validation.Field(&e.Amount, validation.By(positiveAmount)),
	)
}

func ValidateService(s models.Service) error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required, validation.Length(2, 150)),
		validation.Field(&s.Price, validation.By(positiveAmount)),
	)
}

// ValidateUserInput validates a new clinic user.
func ValidateUserInput(in models.UserInput) error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Username, validation.Required, validation.Length(3, 50)),
		validation.Field(&in.Password, validation.Required.Error("password cannot be blank"), validation.By(validatePassword)),
		validation.Field(&in.Phone, validation.Required, validation.Length(7, 30)),
		validation.Field(&in.Role, validation.Required, validation.In(models.RoleNames...)),
	)
}

func ValidateUser(u models.User) error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.Username, validation.Required, validation.Length(3, 50)),
		validation.Field(&u.Phone, validation.Required, validation.Length(7, 30)),
	)
}

func ValidateRole(role string) error {
	return validation.Validate(role, validation.Required, validation.In(models.RoleNames...))
}

func ValidateRecipient(email string) error {
	return validation.Validate(email, validation.Required, is.Email)
}

func validDay(value interface{}) error {
	s, _ := value.(string)
	if _, err := ParseDay(s); err != nil {
		return err
	}
	return nil
}

func positiveAmount(value interface{}) error {
	d, _ := value.(decimal.Decimal)
	if !d.IsPositive() {
		return ErrNotPositive
	}
	return nil
}

func nonNegativeAmount(value interface{}) error {
	d, _ := value.(decimal.Decimal)
	if d.IsNegative() {
		return ErrNegative
	}
	return nil
}

// validatePassword checks the password for length and complexity.
func validatePassword(value interface{}) error {
	password, _ := value.(string)

	if len(password) < 8 {
		return ErrPasswordTooShort
	}

	if !lowercaseRegex.MatchString(password) ||
		!uppercaseRegex.MatchString(password) ||
		!digitRegex.MatchString(password) ||
		!specialRegex.MatchString(password) {
		return ErrPasswordNotComplex
	}
	return nil
}
