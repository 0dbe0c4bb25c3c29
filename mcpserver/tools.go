package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/crypto/bcrypt"

	"github.com/docpoint/appointment-server/booking"
	"github.com/docpoint/appointment-server/chat"
	"github.com/docpoint/appointment-server/db"
	"github.com/docpoint/appointment-server/gcal"
	"github.com/docpoint/appointment-server/models"
	"github.com/docpoint/appointment-server/notify"
)

func registerTools(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("manage_session",
		mcp.WithDescription("Initialize or get chat session context for conversation continuity"),
		mcp.WithNumber("user_id", mcp.Required(), mcp.Description("User ID owning the session")),
		mcp.WithString("action", mcp.Description("One of: get, create, update (default get)")),
		mcp.WithString("context_data", mcp.Description("JSON blob to store for create/update")),
	), manageSession)

	s.AddTool(mcp.NewTool("register_user",
		mcp.WithDescription("Register a new user (patient or doctor) with email, name, password, and role"),
		mcp.WithString("email", mcp.Required()),
		mcp.WithString("name", mcp.Required()),
		mcp.WithString("password", mcp.Required()),
		mcp.WithString("role", mcp.Required(), mcp.Description("patient or doctor")),
		mcp.WithString("specialization", mcp.Description("Required to create a doctor profile")),
		mcp.WithString("phone", mcp.Description("Optional phone number for SMS notifications")),
	), registerUser)

	s.AddTool(mcp.NewTool("authenticate_user",
		mcp.WithDescription("Authenticate user with email and password, returns user info"),
		mcp.WithString("email", mcp.Required()),
		mcp.WithString("password", mcp.Required()),
	), authenticateUser)

	s.AddTool(mcp.NewTool("add_doctor",
		mcp.WithDescription("Add a new doctor to the system by providing their name, specialization, and email"),
		mcp.WithString("name", mcp.Required()),
		mcp.WithString("specialization", mcp.Required()),
		mcp.WithString("email", mcp.Required()),
		mcp.WithString("phone", mcp.Description("Optional phone number")),
	), addDoctor)

	s.AddTool(mcp.NewTool("check_availability",
		mcp.WithDescription("Check 30-minute slot availability for a doctor by name and date (YYYY-MM-DD), including the Google Calendar busy set"),
		mcp.WithString("doctor_name", mcp.Required()),
		mcp.WithString("date", mcp.Required(), mcp.Description("Calendar date, YYYY-MM-DD")),
	), checkAvailability)

	s.AddTool(mcp.NewTool("book_appointment",
		mcp.WithDescription("Book an appointment for a patient by user_id, doctor name, date and desired 30-minute time slot"),
		mcp.WithNumber("user_id", mcp.Required(), mcp.Description("Patient's user ID")),
		mcp.WithString("doctor_name", mcp.Required()),
		mcp.WithString("date", mcp.Required(), mcp.Description("Calendar date, YYYY-MM-DD")),
		mcp.WithString("time_slot", mcp.Required(), mcp.Description("Slot start, HH:MM")),
		mcp.WithString("symptoms", mcp.Description("Optional symptoms text")),
	), bookAppointment)

	s.AddTool(mcp.NewTool("doctor_reports",
		mcp.WithDescription("Get doctor statistics and reports for appointments"),
		mcp.WithNumber("doctor_id", mcp.Required()),
		mcp.WithString("report_type", mcp.Required(), mcp.Description("daily_summary, yesterday_visits, today_tomorrow_appointments or symptom_analysis")),
		mcp.WithString("date_filter", mcp.Description("Date for daily_summary, symptom keyword for symptom_analysis")),
	), doctorReports)

	s.AddTool(mcp.NewTool("send_doctor_notification",
		mcp.WithDescription("Send a notification to a doctor via email or SMS"),
		mcp.WithString("doctor_email", mcp.Required()),
		mcp.WithString("subject", mcp.Required()),
		mcp.WithString("message", mcp.Required()),
		mcp.WithString("notification_type", mcp.Description("email (default) or sms")),
	), sendDoctorNotification)

	s.AddTool(mcp.NewTool("get_system_prompts",
		mcp.WithDescription("Get system prompts and available commands for users"),
	), getSystemPrompts)
}

func manageSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := req.RequireInt("user_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	action := req.GetString("action", "get")

	switch action {
	case "create", "update":
		data := req.GetString("context_data", "{}")
		if err := chat.SaveSession(db.DB, uint(userID), data); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Session %sd successfully", action)), nil

	case "get":
		data, err := chat.GetSession(db.DB, uint(userID))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(data), nil
	}

	return mcp.NewToolResultError("action must be 'get', 'create' or 'update'"), nil
}

func registerUser(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	email, err := req.RequireString("email")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	password, err := req.RequireString("password")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	role, err := req.RequireString("role")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	userRole := models.UserRole(strings.ToLower(role))
	if userRole != models.RolePatient && userRole != models.RoleDoctor {
		return mcp.NewToolResultError("role must be 'patient' or 'doctor'"), nil
	}

	var existing models.User
	if db.DB.Where("email = ?", email).First(&existing).RowsAffected > 0 {
		return mcp.NewToolResultText(fmt.Sprintf("User with email %s already exists", email)), nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return mcp.NewToolResultError("failed to hash password"), nil
	}

	user := models.User{
		Email:    email,
		Name:     name,
		Password: string(hashed),
		Role:     userRole,
		Phone:    req.GetString("phone", ""),
	}
	if err := db.DB.Create(&user).Error; err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if specialization := req.GetString("specialization", ""); userRole == models.RoleDoctor && specialization != "" {
		doctor := models.Doctor{
			Name:           name,
			Specialization: specialization,
			Email:          email,
			Phone:          user.Phone,
			UserID:         &user.ID,
		}
		if err := db.DB.Create(&doctor).Error; err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	return mcp.NewToolResultText(fmt.Sprintf("%s %s registered successfully with email %s",
		strings.ToUpper(role[:1])+role[1:], name, email)), nil
}

func authenticateUser(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	email, err := req.RequireString("email")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	password, err := req.RequireString("password")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var user models.User
	if db.DB.Where("email = ?", email).First(&user).RowsAffected == 0 {
		return mcp.NewToolResultText("Invalid credentials"), nil
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return mcp.NewToolResultText("Invalid credentials"), nil
	}

	info, _ := json.Marshal(map[string]interface{}{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	})
	return mcp.NewToolResultText(string(info)), nil
}

func addDoctor(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	specialization, err := req.RequireString("specialization")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	email, err := req.RequireString("email")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var existing models.Doctor
	if db.DB.Where("name = ? OR email = ?", name, email).First(&existing).RowsAffected > 0 {
		return mcp.NewToolResultText(fmt.Sprintf("Doctor %s already exists.", name)), nil
	}

	doctor := models.Doctor{
		Name:           name,
		Specialization: specialization,
		Email:          email,
		Phone:          req.GetString("phone", ""),
	}
	if err := db.DB.Create(&doctor).Error; err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Doctor %s added successfully.", name)), nil
}

func checkAvailability(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doctorName, err := req.RequireString("doctor_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	slots, err := booking.Availability(db.DB, doctorName, date, gcal.BusySlots)
	if err != nil {
		return mcp.NewToolResultText(err.Error()), nil
	}
	if len(slots) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No slots available for %s on %s.", doctorName, date)), nil
	}
	return mcp.NewToolResultText(strings.Join(slots, ", ")), nil
}

func bookAppointment(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, err := req.RequireInt("user_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	doctorName, err := req.RequireString("doctor_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	timeSlot, err := req.RequireString("time_slot")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	appointment, err := booking.Book(db.DB, uint(userID), doctorName, date, timeSlot, req.GetString("symptoms", ""))
	if err != nil {
		return mcp.NewToolResultText(err.Error()), nil
	}

	outcomes := notify.BookingOutcomes(appointment.Patient, appointment.Doctor, *appointment)
	var details []string
	for _, outcome := range outcomes {
		details = append(details, outcome.Detail)
	}

	return mcp.NewToolResultText(fmt.Sprintf("Appointment booked for %s with %s at %s on %s. %s",
		appointment.Patient.Name, appointment.Doctor.Name, timeSlot, date, strings.Join(details, " "))), nil
}

func doctorReports(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doctorID, err := req.RequireInt("doctor_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	reportType, err := req.RequireString("report_type")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	report, err := booking.Report(db.DB, uint(doctorID), reportType, req.GetString("date_filter", ""))
	if err != nil {
		return mcp.NewToolResultText(err.Error()), nil
	}

	if reportType == booking.ReportDailySummary {
		var doctor models.Doctor
		if db.DB.First(&doctor, doctorID).Error == nil {
			outcome := notify.SMSOutcome(doctor.Phone, strings.ReplaceAll(report, "\n", " "))
			report += "\n" + outcome.Detail
		}
	}
	return mcp.NewToolResultText(report), nil
}

func sendDoctorNotification(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	email, err := req.RequireString("doctor_email")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	subject, err := req.RequireString("subject")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	message, err := req.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	switch req.GetString("notification_type", "email") {
	case "email":
		outcome := notify.EmailOutcome(email, subject, message)
		return mcp.NewToolResultText(outcome.Detail), nil
	case "sms":
		var doctor models.Doctor
		if db.DB.Where("email = ?", email).First(&doctor).RowsAffected == 0 {
			return mcp.NewToolResultText("Doctor not found"), nil
		}
		outcome := notify.SMSOutcome(doctor.Phone, subject+": "+message)
		return mcp.NewToolResultText(outcome.Detail), nil
	}
	return mcp.NewToolResultText("Unsupported notification type"), nil
}

func getSystemPrompts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(`Doctor Appointment System - Available Commands:

AUTHENTICATION:
- "Register as patient/doctor with email [email], name [name], password [password]"
- "Login with email [email] and password [password]"

PATIENT COMMANDS:
- "Check availability for Dr. [Name] on [YYYY-MM-DD]"
- "Book appointment with Dr. [Name] on [YYYY-MM-DD] at [HH:MM] for [symptoms]"

DOCTOR COMMANDS:
- "Show daily summary for [YYYY-MM-DD]"
- "How many patients visited yesterday?"
- "How many appointments today and tomorrow?"
- "How many patients with [symptom]?"

SYSTEM FEATURES:
- Role-based access (Patient/Doctor)
- 30-minute slots (9:00 AM - 5:00 PM)
- Google Calendar integration
- Email confirmations and SMS notifications
- Multi-turn conversations with persisted context`), nil
}
