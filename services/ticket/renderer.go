// File: skybook/services/ticket/renderer.go
package ticket

import (
	"fmt"
	"os"
	"path/filepath"
	"text/template"
	"time"

	"skybook/models"
)

// Renderer writes a ticket document for a booking and returns its path.
type Renderer interface {
	Render(booking *models.Booking) (string, error)
}

const ticketTemplate = `==================================================
                  FLIGHT TICKET
==================================================

Booking ID: {{.Booking.ID}}
Issue Date: {{.IssuedAt}}

Passenger Information:
Name:  {{.Booking.Passenger.FullName}}
Email: {{.Booking.Passenger.Email}}
Phone: {{.Booking.Passenger.Phone}}
Age:   {{.Booking.Passenger.Age}}

Flight Details:
Airline:   {{.Booking.Flight.Airline}}
Flight No: {{.Booking.Flight.ID}}
Route:     {{.Booking.Flight.Origin}} -> {{.Booking.Flight.Destination}}
Date:      {{.Booking.Flight.TravelDate}}
Departure: {{.Booking.Flight.Departure}}
Arrival:   {{.Booking.Flight.Arrival}}

Fare Breakdown:
Base Fare: INR {{printf "%.2f" .Booking.BasePrice}}
Taxes:     INR {{printf "%.2f" .Booking.Taxes}}
Total:     INR {{printf "%.2f" .Booking.TotalAmount}}

Status: {{.Booking.Status}}
==================================================
`

// TextRenderer renders plain-text tickets into a directory.
type TextRenderer struct {
	dir  string
	tmpl *template.Template
}

func NewTextRenderer(dir string) *TextRenderer {
	return &TextRenderer{
		dir:  dir,
		tmpl: template.Must(template.New("ticket").Parse(ticketTemplate)),
	}
}

func (r *TextRenderer) Render(booking *models.Booking) (string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create ticket directory: %w", err)
	}

	path := filepath.Join(r.dir, fmt.Sprintf("ticket_%s.txt", booking.ID))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create ticket file: %w", err)
	}
	defer f.Close()

	data := struct {
		Booking  *models.Booking
		IssuedAt string
	}{
		Booking:  booking,
		IssuedAt: time.Now().Format("2006-01-02 15:04:05"),
	}
	if err := r.tmpl.Execute(f, data); err != nil {
		return "", fmt.Errorf("failed to render ticket: %w", err)
	}
	return path, nil
}
