// File: database/repository/invoice/reports.go
package invoiceRepo

import (
	"context"
	"fmt"
	"time"

	"hebelki/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Totals sums invoiced, paid and outstanding amounts for invoices issued in
// [from, to). Void invoices are excluded entirely.
func (r *mongoInvoiceRepo) Totals(ctx context.Context, businessID string, from, to time.Time) (*InvoiceTotals, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"businessId": businessID,
			"status":     bson.M{"$ne": models.InvoiceVoid},
			"issuedAt":   bson.M{"$gte": from, "$lt": to},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"total": bson.M{"$sum": "$total"},
		}}},
	}
	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("invoice totals aggregation error: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Status string  `bson:"_id"`
		Total  float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("error decoding invoice totals: %w", err)
	}

	totals := &InvoiceTotals{}
	for _, row := range results {
		totals.Invoiced += row.Total
		if row.Status == string(models.InvoicePaid) {
			totals.Paid += row.Total
		} else {
			totals.Outstanding += row.Total
		}
	}
	return totals, nil
}
