package application

import (
	"github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/xml-parsing-service/domain/entities"
	domainerrors "github.com/haramkhor2011-ship-it/claims-app-sub013/contexts/ingestion/xml-parsing-service/domain/errors"
)

func convertHeader(w wireHeader) (entities.Header, []entities.Problem) {
	var problems []entities.Problem
	header := entities.Header{
		SenderID:        w.SenderID,
		ReceiverID:      w.ReceiverID,
		DispositionFlag: w.DispositionFlag,
	}
	if t, ok := parseTimestamp(w.TransactionDate); ok {
		header.TransactionDate = t
	} else {
		problems = append(problems, problem(entities.SeverityError, entities.StageHeader, "Header", "", domainerrors.CodeBadTimestamp, "unparseable TransactionDate"))
	}
	if n, ok := parseInt(w.RecordCount); ok {
		header.RecordCount = n
	} else {
		problems = append(problems, problem(entities.SeverityError, entities.StageHeader, "Header", "", domainerrors.CodeBadInteger, "unparseable RecordCount"))
	}
	return header, problems
}

func problem(severity entities.Severity, stage entities.Stage, objectType, objectKey, code, message string) entities.Problem {
	return entities.Problem{
		Severity:   severity,
		Stage:      stage,
		ObjectType: objectType,
		ObjectKey:  objectKey,
		Code:       code,
		Message:    message,
	}
}

func (p Parser) convertClaim(w wireClaim) (entities.ClaimDTO, []entities.Problem, []entities.AttachmentDTO) {
	var problems []entities.Problem
	claim := entities.ClaimDTO{
		ClaimID:          w.ID,
		PayerID:          w.PayerID,
		ProviderID:       w.ProviderID,
		EmiratesIDNumber: w.EmiratesIDNumber,
		Comments:         w.Comments,
		ContractPackage:  w.ContractPackage,
	}
	if v, ok := parseMoney(w.Gross); ok {
		claim.Gross = v
	} else if w.Gross != "" {
		problems = append(problems, problem(entities.SeverityError, entities.StageRecord, "Claim", w.ID, domainerrors.CodeBadMoney, "unparseable Gross"))
	}
	if v, ok := parseMoney(w.PatientShare); ok {
		claim.PatientShare = v
	} else if w.PatientShare != "" {
		problems = append(problems, problem(entities.SeverityError, entities.StageRecord, "Claim", w.ID, domainerrors.CodeBadMoney, "unparseable PatientShare"))
	}
	if v, ok := parseMoney(w.Net); ok {
		claim.Net = v
	} else if w.Net != "" {
		problems = append(problems, problem(entities.SeverityError, entities.StageRecord, "Claim", w.ID, domainerrors.CodeBadMoney, "unparseable Net"))
	}

	if w.Encounter != nil {
		enc := entities.EncounterDTO{
			FacilityID:          w.Encounter.FacilityID,
			TransferSource:      w.Encounter.TransferSource,
			TransferDestination: w.Encounter.TransferDestination,
		}
		if t, ok := parseTimestamp(w.Encounter.Start); ok {
			enc.Start = t
		}
		if t, ok := parseTimestamp(w.Encounter.End); ok {
			enc.End = &t
		}
		claim.Encounter = &enc
	}

	for _, wd := range w.Diagnoses {
		d := entities.DiagnosisDTO{Type: wd.Type, Code: wd.Code}
		if !d.HasRequiredFields() {
			problems = append(problems, problem(entities.SeverityError, entities.StageRecord, "Diagnosis", w.ID, domainerrors.CodeBadInteger, "diagnosis missing required field, skipped"))
			continue
		}
		claim.Diagnoses = append(claim.Diagnoses, d)
	}

	for _, wa := range w.Activities {
		act, actProblems := p.convertActivity(w.ID, wa)
		problems = append(problems, actProblems...)
		if act == nil {
			continue
		}
		claim.Activities = append(claim.Activities, *act)
	}

	if w.Resubmission != nil {
		resub := entities.ResubmissionDTO{Type: w.Resubmission.Type, Comment: w.Resubmission.Comment}
		if data, _, ok, _, badBase64 := decodeAttachment(w.Resubmission.Attachment, p.MaxAttachmentBytes); ok {
			resub.Attachment = data
		} else if badBase64 {
			problems = append(problems, problem(entities.SeverityWarning, entities.StageRecord, "Resubmission", w.ID, domainerrors.CodeAttachmentBadBase64, "resubmission attachment is not valid base64"))
		}
		claim.Resubmission = &resub
	}

	var attachments []entities.AttachmentDTO
	for _, wat := range w.Attachments {
		data, digest, ok, tooLarge, badBase64 := decodeAttachment(wat.Data, p.MaxAttachmentBytes)
		switch {
		case ok:
			att := entities.AttachmentDTO{
				ClaimID:  w.ID,
				FileName: wat.FileName,
				Bytes:    data,
				SHA256:   digest,
				Size:     len(data),
			}
			attachments = append(attachments, att)
			claim.Attachments = append(claim.Attachments, att)
		case tooLarge:
			problems = append(problems, problem(entities.SeverityError, entities.StageAttachment, "Attachment", w.ID, domainerrors.CodeAttachmentTooLarge, "attachment exceeds maximum decoded size"))
		case badBase64:
			problems = append(problems, problem(entities.SeverityError, entities.StageAttachment, "Attachment", w.ID, domainerrors.CodeAttachmentBadBase64, "attachment is not valid base64"))
		default:
			problems = append(problems, problem(entities.SeverityWarning, entities.StageAttachment, "Attachment", w.ID, domainerrors.CodeAttachmentEmpty, "empty attachment payload discarded"))
		}
	}

	return claim, problems, attachments
}

func (p Parser) convertActivity(claimID string, wa wireActivity) (*entities.ActivityDTO, []entities.Problem) {
	var problems []entities.Problem
	act := entities.ActivityDTO{
		ActivityID:  wa.ID,
		Type:        wa.Type,
		Code:        wa.Code,
		ClinicianID: wa.Clinician,
		PriorAuthID: wa.PriorAuthID,
	}
	if t, ok := parseTimestamp(wa.Start); ok {
		act.Start = t
	}
	if v, ok := parseMoney(wa.Quantity); ok {
		act.Quantity = v
	}
	if v, ok := parseMoney(wa.Net); ok {
		act.Net = v
	}
	for _, wo := range wa.Observations {
		obs := entities.ObservationDTO{Type: wo.Type, Code: wo.Code, Value: wo.Value, ValueType: wo.ValueType}
		if !obs.HasRequiredFields() {
			problems = append(problems, problem(entities.SeverityError, entities.StageRecord, "Observation", claimID, domainerrors.CodeBadInteger, "observation missing required field, skipped"))
			continue
		}
		act.Observations = append(act.Observations, obs)
	}
	if !act.HasRequiredFields() {
		problems = append(problems, problem(entities.SeverityError, entities.StageRecord, "Activity", claimID, domainerrors.CodeBadInteger, "activity missing required field, skipped"))
		return nil, problems
	}
	return &act, problems
}

func convertRemittanceClaim(w wireRemittanceClaim) (entities.RemittanceClaimDTO, []entities.Problem) {
	var problems []entities.Problem
	claim := entities.RemittanceClaimDTO{
		ClaimID:          w.ID,
		IDPayer:          w.IDPayer,
		ProviderID:       w.ProviderID,
		DenialCode:       w.DenialCode,
		PaymentReference: w.PaymentReference,
		FacilityID:       w.FacilityID,
		Comment:          w.Comment,
	}
	if t, ok := parseTimestamp(w.DateSettlement); ok {
		claim.SettlementDate = t
	}
	for _, wa := range w.Activities {
		act := entities.RemittanceActivityDTO{
			ActivityID: wa.ID,
			Type:       wa.Type,
			Code:       wa.Code,
			DenialCode: wa.DenialCode,
		}
		if v, ok := parseMoney(wa.Quantity); ok {
			act.Quantity = v
		}
		if v, ok := parseMoney(wa.Net); ok {
			act.Net = v
		}
		if v, ok := parseMoney(wa.ListPrice); ok {
			act.ListPrice = v
		}
		if v, ok := parseMoney(wa.Gross); ok {
			act.Gross = v
		}
		if v, ok := parseMoney(wa.PatientShare); ok {
			act.PatientShare = v
		}
		if v, ok := parseMoney(wa.PaymentAmount); ok {
			act.PaymentAmount = v
		}
		if !act.HasRequiredFields() {
			problems = append(problems, problem(entities.SeverityError, entities.StageRecord, "RemittanceActivity", w.ID, domainerrors.CodeBadInteger, "remittance activity missing required field, skipped"))
			continue
		}
		claim.Activities = append(claim.Activities, act)
	}
	return claim, problems
}
