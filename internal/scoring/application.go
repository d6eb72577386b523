// internal/scoring/application.go
package scoring

// Form field names as posted by the benevolence application form.
const (
	FieldFirstName            = "first_name"
	FieldLastName             = "last_name"
	FieldEmail                = "email"
	FieldPhone                = "phone"
	FieldStreetAddress        = "street_address"
	FieldCity                 = "city"
	FieldState                = "state"
	FieldZipCode              = "zip_code"
	FieldHouseholdSize        = "household_size"
	FieldEmploymentStatus     = "employment_status"
	FieldMonthlyNetIncome     = "monthly_net_income"
	FieldTotalMonthlyIncome   = "total_monthly_income"
	FieldSituationDescription = "situation_description"
	FieldAmountRequested      = "amount_requested"
	FieldAssistancePurpose    = "assistance_purpose"
	FieldPayeeName            = "payee_name"
	FieldSignature            = "signature"

	FieldExpenseHousing        = "expense_housing"
	FieldExpenseUtilities      = "expense_utilities"
	FieldExpenseFood           = "expense_food"
	FieldExpenseTransportation = "expense_transportation"
	FieldExpenseMedical        = "expense_medical"
	FieldExpenseChildcare      = "expense_childcare"
	FieldExpenseDebt           = "expense_debt"
	FieldSavingsAmount         = "savings_amount"

	FieldNeedEviction       = "need_eviction"
	FieldNeedUtilityShutoff = "need_utility_shutoff"
	FieldNeedRent           = "need_rent"
	FieldNeedMedical        = "need_medical"
	FieldNeedFood           = "need_food"
	FieldNeedTransportation = "need_transportation"
	FieldNeedOther          = "need_other"
	FieldDeadlineDate       = "deadline_date"

	FieldOtherAssistance        = "other_assistance"
	FieldOtherAssistanceDetails = "other_assistance_details"
	FieldOngoingServices        = "ongoing_services"
	FieldOngoingServicesDetails = "ongoing_services_details"
)

// Document upload field names.
const (
	DocumentPhotoID        = "photo_id"
	DocumentProofOfIncome  = "proof_of_income"
	DocumentSupportingBill = "supporting_bill"
	DocumentAdditional     = "additional_document"
)

// RequiredTextFields are the free-text fields counted by the completeness score.
var RequiredTextFields = []string{
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldPhone,
	FieldStreetAddress,
	FieldCity,
	FieldState,
	FieldZipCode,
	FieldHouseholdSize,
	FieldEmploymentStatus,
	FieldMonthlyNetIncome,
	FieldSituationDescription,
	FieldAmountRequested,
	FieldAssistancePurpose,
	FieldPayeeName,
	FieldSignature,
}

// RequiredChoiceFields are the yes/no questions counted by the completeness score.
var RequiredChoiceFields = []string{
	FieldOtherAssistance,
	FieldOngoingServices,
}

// RequiredDocuments are the upload fields counted by the completeness score.
var RequiredDocuments = []string{
	DocumentPhotoID,
	DocumentProofOfIncome,
	DocumentSupportingBill,
}

// DocumentFields lists every upload field the form accepts.
var DocumentFields = append(append([]string{}, RequiredDocuments...), DocumentAdditional)

// ChoiceFields lists every field that expects a yes/no style answer.
var ChoiceFields = []string{
	FieldOtherAssistance,
	FieldOngoingServices,
	FieldNeedEviction,
	FieldNeedUtilityShutoff,
	FieldNeedRent,
	FieldNeedMedical,
	FieldNeedFood,
	FieldNeedTransportation,
	FieldNeedOther,
}

// UploadedFile describes a document attached to the submission. Only the
// field name matters for scoring.
type UploadedFile struct {
	FieldName string `json:"fieldName"`
	Filename  string `json:"filename"`
}

// Expenses holds the seven monthly expense answers.
type Expenses struct {
	Housing        Answer
	Utilities      Answer
	Food           Answer
	Transportation Answer
	Medical        Answer
	Childcare      Answer
	Debt           Answer
}

// Total sums the monthly expense categories. Negative entries count as zero.
func (e Expenses) Total() float64 {
	total := 0.0
	for _, a := range []Answer{e.Housing, e.Utilities, e.Food, e.Transportation, e.Medical, e.Childcare, e.Debt} {
		if v := a.Amount(); v > 0 {
			total += v
		}
	}
	return total
}

// Needs holds the assistance-type checkboxes.
type Needs struct {
	Eviction       Answer
	UtilityShutoff Answer
	Rent           Answer
	Medical        Answer
	Food           Answer
	Transportation Answer
	Other          Answer
}

// Application is the typed form of a submission. Every field is optional;
// FromSubmission is the only place string keys are looked up.
type Application struct {
	FirstName            Answer
	LastName             Answer
	Email                Answer
	Phone                Answer
	StreetAddress        Answer
	City                 Answer
	State                Answer
	ZipCode              Answer
	HouseholdSize        Answer
	EmploymentStatus     Answer
	MonthlyNetIncome     Answer
	TotalMonthlyIncome   Answer
	SituationDescription Answer
	AmountRequested      Answer
	AssistancePurpose    Answer
	PayeeName            Answer
	Signature            Answer

	Expenses      Expenses
	SavingsAmount Answer

	Needs        Needs
	DeadlineDate Answer

	OtherAssistance        Answer
	OtherAssistanceDetails Answer
	OngoingServices        Answer
	OngoingServicesDetails Answer

	Documents []UploadedFile
}

func (a *Application) bindings() map[string]*Answer {
	return map[string]*Answer{
		FieldFirstName:            &a.FirstName,
		FieldLastName:             &a.LastName,
		FieldEmail:                &a.Email,
		FieldPhone:                &a.Phone,
		FieldStreetAddress:        &a.StreetAddress,
		FieldCity:                 &a.City,
		FieldState:                &a.State,
		FieldZipCode:              &a.ZipCode,
		FieldHouseholdSize:        &a.HouseholdSize,
		FieldEmploymentStatus:     &a.EmploymentStatus,
		FieldMonthlyNetIncome:     &a.MonthlyNetIncome,
		FieldTotalMonthlyIncome:   &a.TotalMonthlyIncome,
		FieldSituationDescription: &a.SituationDescription,
		FieldAmountRequested:      &a.AmountRequested,
		FieldAssistancePurpose:    &a.AssistancePurpose,
		FieldPayeeName:            &a.PayeeName,
		FieldSignature:            &a.Signature,

		FieldExpenseHousing:        &a.Expenses.Housing,
		FieldExpenseUtilities:      &a.Expenses.Utilities,
		FieldExpenseFood:           &a.Expenses.Food,
		FieldExpenseTransportation: &a.Expenses.Transportation,
		FieldExpenseMedical:        &a.Expenses.Medical,
		FieldExpenseChildcare:      &a.Expenses.Childcare,
		FieldExpenseDebt:           &a.Expenses.Debt,
		FieldSavingsAmount:         &a.SavingsAmount,

		FieldNeedEviction:       &a.Needs.Eviction,
		FieldNeedUtilityShutoff: &a.Needs.UtilityShutoff,
		FieldNeedRent:           &a.Needs.Rent,
		FieldNeedMedical:        &a.Needs.Medical,
		FieldNeedFood:           &a.Needs.Food,
		FieldNeedTransportation: &a.Needs.Transportation,
		FieldNeedOther:          &a.Needs.Other,
		FieldDeadlineDate:       &a.DeadlineDate,

		FieldOtherAssistance:        &a.OtherAssistance,
		FieldOtherAssistanceDetails: &a.OtherAssistanceDetails,
		FieldOngoingServices:        &a.OngoingServices,
		FieldOngoingServicesDetails: &a.OngoingServicesDetails,
	}
}

// FromSubmission builds an Application from decoded form values and the
// uploaded file descriptors. Unknown keys are ignored.
func FromSubmission(fields map[string]string, files []UploadedFile) Application {
	var app Application
	for name, target := range app.bindings() {
		if v, ok := fields[name]; ok {
			*target = Answer(v)
		}
	}
	app.Documents = append([]UploadedFile(nil), files...)
	return app
}

// Fields returns the known, non-empty form values keyed by field name.
func (a Application) Fields() map[string]string {
	out := make(map[string]string)
	for name, value := range a.bindings() {
		if value.Provided() {
			out[name] = value.Text()
		}
	}
	return out
}

// Value looks up a known field by name.
func (a Application) Value(name string) Answer {
	if v, ok := a.bindings()[name]; ok {
		return *v
	}
	return ""
}

// HasDocument reports whether a file was uploaded under fieldName.
func (a Application) HasDocument(fieldName string) bool {
	for _, f := range a.Documents {
		if f.FieldName == fieldName {
			return true
		}
	}
	return false
}

// FullName joins first and last name.
func (a Application) FullName() string {
	first, last := a.FirstName.Text(), a.LastName.Text()
	switch {
	case first == "":
		return last
	case last == "":
		return first
	}
	return first + " " + last
}
