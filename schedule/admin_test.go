package schedule

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/touchbase/models"
	"github.com/harperreed/touchbase/store"
)

func TestAddCompanyValidation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name    string
		company models.Company
	}{
		{"empty name", models.Company{Name: " ", CommunicationPeriodicity: 7}},
		{"zero periodicity", models.Company{Name: "Acme"}},
		{"too many emails", models.Company{Name: "Acme", CommunicationPeriodicity: 7, Emails: make([]string, 6)}},
		{"too many phones", models.Company{Name: "Acme", CommunicationPeriodicity: 7, PhoneNumbers: make([]string, 6)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.engine.AddCompany(tt.company)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	assert.Empty(t, f.engine.Companies())
}

func TestAddCompanyAssignsIDAndClearsSchedule(t *testing.T) {
	f := newFixture(t)
	last := date("2024-01-01T00:00:00Z")

	c, err := f.engine.AddCompany(models.Company{
		ID:                       uuid.New(),
		Name:                     "Acme",
		CommunicationPeriodicity: 7,
		LastCommunication:        &last,
		Emails:                   []string{"hi@acme.test"},
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, c.ID)
	assert.False(t, c.HasSchedule())
	assert.Nil(t, c.LastCommunication)

	stored := store.Load(f.store, store.KeyCompanies, []models.Company{})
	require.Len(t, stored, 1)
	assert.Equal(t, c.ID, stored[0].ID)
}

func TestUpdateCompanyRederivesNext(t *testing.T) {
	f := newFixture(t)
	c := f.addCompany(t, "Acme", 14)
	_, err := f.engine.LogCommunication(c.ID, models.CommunicationInput{Date: "2024-01-01T00:00:00Z"})
	require.NoError(t, err)

	c = f.company(t, c.ID)
	c.Name = "Acme Corp"
	c.CommunicationPeriodicity = 30
	c.NextCommunication = nil // ignored; cache is engine-owned

	updated, err := f.engine.UpdateCompany(c)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", updated.Name)
	assert.True(t, updated.LastCommunication.Equal(date("2024-01-01T00:00:00Z")))
	assert.True(t, updated.NextCommunication.Equal(date("2024-01-31T00:00:00Z")))
}

func TestUpdateCompanyKeepsUnscheduled(t *testing.T) {
	f := newFixture(t)
	c := f.addCompany(t, "Acme", 14)
	c.CommunicationPeriodicity = 3

	updated, err := f.engine.UpdateCompany(c)
	require.NoError(t, err)
	assert.False(t, updated.HasSchedule())
}

func TestUpdateAndDeleteUnknownCompany(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.UpdateCompany(models.Company{ID: uuid.New(), Name: "Ghost", CommunicationPeriodicity: 1})
	assert.ErrorIs(t, err, ErrCompanyNotFound)
	assert.ErrorIs(t, f.engine.DeleteCompany(uuid.New()), ErrCompanyNotFound)

	_, err = f.engine.Company(uuid.New())
	assert.ErrorIs(t, err, ErrCompanyNotFound)
}

func TestDeleteCompanyKeepsEvents(t *testing.T) {
	f := newFixture(t)
	a := f.addCompany(t, "Acme", 14)
	b := f.addCompany(t, "Beta", 7)
	_, err := f.engine.LogCommunication(a.ID, models.CommunicationInput{Date: "2024-01-01"})
	require.NoError(t, err)

	require.NoError(t, f.engine.DeleteCompany(a.ID))

	assert.Len(t, f.engine.Communications(), 1)
	assert.Equal(t, UnknownName, f.engine.CompanyName(a.ID))

	// index stays valid for the remaining company
	got, err := f.engine.Company(b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Beta", got.Name)
}

func TestCompaniesReturnsCopies(t *testing.T) {
	f := newFixture(t)
	c, err := f.engine.AddCompany(models.Company{Name: "Acme", CommunicationPeriodicity: 7, Emails: []string{"a@acme.test"}})
	require.NoError(t, err)

	list := f.engine.Companies()
	list[0].Name = "Mutated"
	list[0].Emails[0] = "mutated@acme.test"

	got := f.company(t, c.ID)
	assert.Equal(t, "Acme", got.Name)
	assert.Equal(t, []string{"a@acme.test"}, got.Emails)
}

func TestMethodCRUD(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.AddMethod(models.CommunicationMethod{Name: "Fax", Sequence: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.engine.AddMethod(models.CommunicationMethod{Name: "", Sequence: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	call := f.addMethod(t, "Phone Call", 4)
	mail := f.addMethod(t, "Email", 3)
	post := f.addMethod(t, "LinkedIn Post", 1)

	names := []string{}
	for _, m := range f.engine.Methods() {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"LinkedIn Post", "Email", "Phone Call"}, names)

	mail.Mandatory = true
	mail.Description = "Send an email."
	_, err = f.engine.UpdateMethod(mail)
	require.NoError(t, err)
	got, err := f.engine.Method(mail.ID)
	require.NoError(t, err)
	assert.True(t, got.Mandatory)

	require.NoError(t, f.engine.DeleteMethod(post.ID))
	assert.Equal(t, UnknownName, f.engine.MethodName(post.ID))
	assert.Equal(t, "Phone Call", f.engine.MethodName(call.ID))

	_, err = f.engine.UpdateMethod(post)
	assert.ErrorIs(t, err, ErrMethodNotFound)
	assert.ErrorIs(t, f.engine.DeleteMethod(post.ID), ErrMethodNotFound)

	stored := store.Load(f.store, store.KeyCommunicationMethods, []models.CommunicationMethod{})
	assert.Len(t, stored, 2)
}

func TestSeed(t *testing.T) {
	f := newFixture(t)

	companies, methods := f.engine.Seed()
	assert.Equal(t, 5, companies)
	assert.Equal(t, 5, methods)

	periodicities := []int{}
	for _, c := range f.engine.Companies() {
		periodicities = append(periodicities, c.CommunicationPeriodicity)
	}
	assert.Equal(t, []int{14, 7, 10, 21, 30}, periodicities)

	companies, methods = f.engine.Seed()
	assert.Zero(t, companies)
	assert.Zero(t, methods)
}
