// File: database/repository/booking/reports.go
package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"hebelki/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SumRevenue totals the price of confirmed and completed bookings starting in
// [from, to).
func (r *mongoBookingRepo) SumRevenue(ctx context.Context, businessID string, from, to time.Time) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"businessId": businessID,
			"status":     bson.M{"$in": []models.BookingStatus{models.BookingConfirmed, models.BookingCompleted}},
			"startsAt":   bson.M{"$gte": from, "$lt": to},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$price"},
		}}},
	}
	cursor, err := r.bookingColl.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("revenue aggregation error: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, fmt.Errorf("error decoding revenue aggregation: %w", err)
	}
	if len(results) == 0 {
		return 0, nil
	}
	return results[0].Total, nil
}

func (r *mongoBookingRepo) CountByStatus(ctx context.Context, businessID string, from, to time.Time) (map[string]int, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"businessId": businessID,
			"startsAt":   bson.M{"$gte": from, "$lt": to},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
	}
	cursor, err := r.bookingColl.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("status aggregation error: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Status string `bson:"_id"`
		Count  int    `bson:"count"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("error decoding status aggregation: %w", err)
	}

	counts := make(map[string]int, len(results))
	for _, row := range results {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// CountPerDay buckets bookings by calendar day in the business's timezone.
func (r *mongoBookingRepo) CountPerDay(ctx context.Context, businessID string, from, to time.Time, tz string) (map[string]int, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if tz == "" {
		tz = "UTC"
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"businessId": businessID,
			"status":     bson.M{"$ne": models.BookingCancelled},
			"startsAt":   bson.M{"$gte": from, "$lt": to},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format":   "%Y-%m-%d",
				"date":     "$startsAt",
				"timezone": tz,
			}},
			"count": bson.M{"$sum": 1},
		}}},
	}
	cursor, err := r.bookingColl.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("per-day aggregation error: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		Day   string `bson:"_id"`
		Count int    `bson:"count"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("error decoding per-day aggregation: %w", err)
	}

	counts := make(map[string]int, len(results))
	for _, row := range results {
		counts[row.Day] = row.Count
	}
	return counts, nil
}

// NoShowRows returns the period's no-show total plus the customers who missed
// more than once, worst offenders first.
func (r *mongoBookingRepo) NoShowRows(ctx context.Context, businessID string, from, to time.Time) (int, []models.NoShowRepeatRow, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"businessId": businessID,
			"status":     models.BookingNoShow,
			"startsAt":   bson.M{"$gte": from, "$lt": to},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":          "$customerId",
			"customerName": bson.M{"$last": "$customerName"},
			"count":        bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
	}
	cursor, err := r.bookingColl.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, nil, fmt.Errorf("no-show aggregation error: %w", err)
	}
	defer cursor.Close(ctx)

	var results []struct {
		CustomerID   string `bson:"_id"`
		CustomerName string `bson:"customerName"`
		Count        int    `bson:"count"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, nil, fmt.Errorf("error decoding no-show aggregation: %w", err)
	}

	total := 0
	var repeats []models.NoShowRepeatRow
	for _, row := range results {
		total += row.Count
		if row.Count > 1 {
			repeats = append(repeats, models.NoShowRepeatRow{
				CustomerID:   row.CustomerID,
				CustomerName: row.CustomerName,
				Count:        row.Count,
			})
		}
	}
	return total, repeats, nil
}
