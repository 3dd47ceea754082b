// ABOUTME: Communication MCP tool handlers
// ABOUTME: Implements log_communication, update_communication, delete_communication, and company_schedule
package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/oklog/ulid/v2"

	"github.com/harperreed/touchbase/models"
	"github.com/harperreed/touchbase/schedule"
)

type CommunicationHandlers struct {
	engine *schedule.Engine
}

func NewCommunicationHandlers(engine *schedule.Engine) *CommunicationHandlers {
	return &CommunicationHandlers{engine: engine}
}

type LogCommunicationInput struct {
	CompanyID         string `json:"company_id" jsonschema:"Company ID (required)"`
	CommunicationType string `json:"communication_type,omitempty" jsonschema:"Communication method ID (default: unchanged)"`
	Date              string `json:"date,omitempty" jsonschema:"When it happened: RFC 3339, YYYY-MM-DDTHH:MM, or YYYY-MM-DD (default now)"`
	Notes             string `json:"notes,omitempty" jsonschema:"Free-form notes"`
}

type LogCommunicationOutput struct {
	Communication CommunicationOutput `json:"communication"`
	Company       *CompanyOutput      `json:"company,omitempty"`
}

func (h *CommunicationHandlers) LogCommunication(_ context.Context, _ *mcp.CallToolRequest, input LogCommunicationInput) (*mcp.CallToolResult, LogCommunicationOutput, error) {
	companyID, err := uuid.Parse(input.CompanyID)
	if err != nil {
		return nil, LogCommunicationOutput{}, fmt.Errorf("invalid company_id: %w", err)
	}
	methodID, err := parseOptionalUUID(input.CommunicationType)
	if err != nil {
		return nil, LogCommunicationOutput{}, fmt.Errorf("invalid communication_type: %w", err)
	}

	date := input.Date
	if date == "" {
		date = h.engine.Now().Format(time.RFC3339)
	}

	comm, err := h.engine.LogCommunication(companyID, models.CommunicationInput{
		CommunicationType: methodID,
		Date:              date,
		Notes:             input.Notes,
	})
	if err != nil {
		return nil, LogCommunicationOutput{}, fmt.Errorf("failed to log communication: %w", err)
	}

	out := LogCommunicationOutput{Communication: communicationToOutput(h.engine, comm)}
	if company, err := h.engine.Company(companyID); err == nil {
		co := companyToOutput(h.engine, company)
		out.Company = &co
	}
	return nil, out, nil
}

type UpdateCommunicationInput struct {
	ID                string `json:"id" jsonschema:"Communication ID (required)"`
	CommunicationType string `json:"communication_type,omitempty" jsonschema:"Communication method ID"`
	Date              string `json:"date" jsonschema:"New date (required)"`
	Notes             string `json:"notes,omitempty" jsonschema:"Replacement notes"`
}

func (h *CommunicationHandlers) UpdateCommunication(_ context.Context, _ *mcp.CallToolRequest, input UpdateCommunicationInput) (*mcp.CallToolResult, CommunicationOutput, error) {
	id, err := ulid.Parse(input.ID)
	if err != nil {
		return nil, CommunicationOutput{}, fmt.Errorf("invalid id: %w", err)
	}
	methodID, err := parseOptionalUUID(input.CommunicationType)
	if err != nil {
		return nil, CommunicationOutput{}, fmt.Errorf("invalid communication_type: %w", err)
	}
	if methodID == uuid.Nil {
		existing, err := h.engine.Communication(id)
		if err != nil {
			return nil, CommunicationOutput{}, fmt.Errorf("failed to update communication: %w", err)
		}
		methodID = existing.CommunicationType
	}

	comm, err := h.engine.UpdateCommunication(id, models.CommunicationInput{
		CommunicationType: methodID,
		Date:              input.Date,
		Notes:             input.Notes,
	})
	if err != nil {
		return nil, CommunicationOutput{}, fmt.Errorf("failed to update communication: %w", err)
	}
	return nil, communicationToOutput(h.engine, comm), nil
}

type DeleteCommunicationInput struct {
	ID string `json:"id" jsonschema:"Communication ID (required)"`
}

type DeleteCommunicationOutput struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

func (h *CommunicationHandlers) DeleteCommunication(_ context.Context, _ *mcp.CallToolRequest, input DeleteCommunicationInput) (*mcp.CallToolResult, DeleteCommunicationOutput, error) {
	id, err := ulid.Parse(input.ID)
	if err != nil {
		return nil, DeleteCommunicationOutput{}, fmt.Errorf("invalid id: %w", err)
	}
	if err := h.engine.DeleteCommunication(id); err != nil {
		return nil, DeleteCommunicationOutput{}, fmt.Errorf("failed to delete communication: %w", err)
	}
	return nil, DeleteCommunicationOutput{Deleted: true, ID: id.String()}, nil
}

type CompanyScheduleInput struct {
	CompanyID string `json:"company_id" jsonschema:"Company ID (required)"`
}

type CompanyScheduleOutput struct {
	Company    CompanyOutput         `json:"company"`
	History    []CommunicationOutput `json:"history"`
	Upcoming   []string              `json:"upcoming"`
	IsOverdue  bool                  `json:"is_overdue"`
	IsDueToday bool                  `json:"is_due_today"`
}

func (h *CommunicationHandlers) CompanySchedule(_ context.Context, _ *mcp.CallToolRequest, input CompanyScheduleInput) (*mcp.CallToolResult, CompanyScheduleOutput, error) {
	companyID, err := uuid.Parse(input.CompanyID)
	if err != nil {
		return nil, CompanyScheduleOutput{}, fmt.Errorf("invalid company_id: %w", err)
	}
	company, err := h.engine.Company(companyID)
	if err != nil {
		return nil, CompanyScheduleOutput{}, err
	}

	history := h.engine.CompanyCommunications(companyID)
	out := CompanyScheduleOutput{
		Company:    companyToOutput(h.engine, company),
		History:    make([]CommunicationOutput, len(history)),
		IsOverdue:  h.engine.IsOverdue(company),
		IsDueToday: h.engine.IsDueToday(company),
	}
	for i, c := range history {
		out.History[i] = communicationToOutput(h.engine, c)
	}
	for _, t := range h.engine.NextCommunications(company) {
		out.Upcoming = append(out.Upcoming, t.Format(time.RFC3339))
	}
	return nil, out, nil
}
