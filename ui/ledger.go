package ui

import "strings"

// LedgerInstructionTemplate tells the user what to do on the device before
// confirming. The data variant adds the blind-signing step.
func LedgerInstructionTemplate(t func(string, ...any) string, showDataInstruction, notConnected bool) string {
	var sb strings.Builder

	sb.WriteString("<line text:Ledger>\n<w>")
	sb.WriteString(" <b>" + Escape(t("ledgerConnectionInstructionHeader")) + "</b>\n")
	sb.WriteString("  • " + Escape(t("ledgerConnectionInstructionStepOne")) + "\n")
	sb.WriteString("  • " + Escape(t("ledgerConnectionInstructionStepTwo")) + "\n")
	sb.WriteString("  • " + Escape(t("ledgerConnectionInstructionStepThree")) + "\n")
	if showDataInstruction {
		sb.WriteString("  • " + Escape(t("ledgerConnectionInstructionStepFour")) + "\n")
	}
	if notConnected {
		sb.WriteString("<color fg:g.ErrorFgColor> " + Escape(t("ledgerDeviceNotConnected")) + "</color>\n")
	}
	sb.WriteString("</w>")

	return sb.String()
}
