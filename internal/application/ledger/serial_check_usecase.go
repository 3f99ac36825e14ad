package ledger

import (
	"context"
	"strings"

	"github.com/jhoicas/backoffice-api/internal/application/dto"
	"github.com/jhoicas/backoffice-api/internal/domain/entity"
	domainledger "github.com/jhoicas/backoffice-api/internal/domain/ledger"
)

// SerialCheckUseCase verificación previa de seriales y códigos de barras (sin escribir nada).
type SerialCheckUseCase struct {
	txRunner TxRunner
}

// NewSerialCheckUseCase construye el caso de uso.
func NewSerialCheckUseCase(txRunner TxRunner) *SerialCheckUseCase {
	return &SerialCheckUseCase{txRunner: txRunner}
}

// Check devuelve los seriales que colisionan y los códigos de barras en conflicto.
func (uc *SerialCheckUseCase) Check(ctx context.Context, in dto.SerialCheckRequest) (*dto.SerialCheckResponse, error) {
	lines := make([]entity.ArrivalLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		lines = append(lines, entity.ArrivalLine{
			ProductName:   strings.TrimSpace(l.ProductName),
			Kind:          entity.ItemKind(l.Kind),
			Quantity:      l.Quantity,
			Barcode:       strings.TrimSpace(l.Barcode),
			SerialNumbers: l.SerialNumbers,
		})
	}
	candidates := append(append([]string{}, in.SerialNumbers...), domainledger.CandidateSerials(lines)...)

	out := &dto.SerialCheckResponse{Duplicates: []string{}, BarcodeConflicts: []dto.BarcodeConflictResponse{}}
	err := uc.txRunner.RunSnapshot(ctx, func(s Stores) error {
		arrivals, err := s.Arrivals.ListAll(ctx)
		if err != nil {
			return err
		}
		receipts, err := s.Receipts.ListAll(ctx)
		if err != nil {
			return err
		}
		debts, err := s.Debts.ListAll(ctx)
		if err != nil {
			return err
		}
		if dup := domainledger.CheckUniqueness(candidates, arrivals, debts, receipts, in.ExcludeArrivalID); len(dup) > 0 {
			out.Duplicates = dup
		}
		for _, c := range domainledger.CheckBarcodeConflicts(lines, arrivals, in.ExcludeArrivalID) {
			out.BarcodeConflicts = append(out.BarcodeConflicts, dto.BarcodeConflictResponse{
				Barcode:             c.Barcode,
				ProductName:         c.ProductName,
				ExistingProductName: c.ExistingProductName,
				ExistingKind:        string(c.ExistingKind),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out.OK = len(out.Duplicates) == 0 && len(out.BarcodeConflicts) == 0
	return out, nil
}
