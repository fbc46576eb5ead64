package ui

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

var (
	// Colores para cada tipo de mensaje
	Success = color.New(color.FgGreen, color.Bold)
	Error   = color.New(color.FgRed, color.Bold)
	Warning = color.New(color.FgYellow, color.Bold)
	Info    = color.New(color.FgCyan, color.Bold)
	Dim     = color.New(color.FgHiBlack)

	MateEmoji    = "🧉"
	SuccessEmoji = Success.Sprint("✅")
	ErrorEmoji   = Error.Sprint("❌")
	WarningEmoji = Warning.Sprint("⚠️")
)

// SmartSpinner es un spinner con mensajes de progreso actualizables.
type SmartSpinner struct {
	spinner *spinner.Spinner
}

// NewSmartSpinner crea un spinner con un mensaje inicial.
func NewSmartSpinner(initialMessage string) *SmartSpinner {
	s := spinner.New(
		spinner.CharSets[14],
		100*time.Millisecond,
		spinner.WithColor("cyan"),
		spinner.WithSuffix(" "+MateEmoji+" "+initialMessage),
	)
	return &SmartSpinner{spinner: s}
}

// Start arranca el spinner.
func (s *SmartSpinner) Start() {
	s.spinner.Start()
}

// Stop detiene el spinner.
func (s *SmartSpinner) Stop() {
	s.spinner.Stop()
}

// Update cambia el mensaje de progreso sin detener la animación.
func (s *SmartSpinner) Update(message string) {
	s.spinner.Suffix = " " + MateEmoji + " " + message
}

// Log detiene momentáneamente el spinner para imprimir una línea.
func (s *SmartSpinner) Log(message string) {
	s.spinner.Stop()
	fmt.Println(Dim.Sprint("  " + message))
	s.spinner.Start()
}

// Success detiene el spinner con un mensaje de éxito.
func (s *SmartSpinner) Success(message string) {
	s.spinner.Stop()
	fmt.Printf("%s %s\n", SuccessEmoji, message)
}

// Error detiene el spinner con un mensaje de error.
func (s *SmartSpinner) Error(message string) {
	s.spinner.Stop()
	fmt.Printf("%s %s\n", ErrorEmoji, message)
}
