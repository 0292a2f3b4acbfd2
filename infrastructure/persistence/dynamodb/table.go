// Package dynamodb implements the repository ports over a single
// DynamoDB table.
//
// Item layout:
//
//	PK = <TYPE>#<id>          SK = "METADATA"
//	GSI1PK = "ENTITY#<TYPE>"  GSI1SK = <createdAt, fixed-width UTC>
//	GSI2PK, GSI2SK            secondary lookups (orders by user,
//	                          coupons by code)
//
// GSI1 gives each entity type a creation-time range: listings, latest-N
// and the month-window scans behind the dashboards are all GSI1 queries.
package dynamodb

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	gsi1Name = "GSI1"
	gsi2Name = "GSI2"

	skMetadata = "METADATA"

	entityProduct = "PRODUCT"
	entityOrder   = "ORDER"
	entityUser    = "USER"
	entityCoupon  = "COUPON"
)

// sortKeyTimeFormat is fixed width so that lexicographic order on the
// GSI1 sort key matches chronological order. RFC3339Nano trims trailing
// zeros and would break that.
const sortKeyTimeFormat = "2006-01-02T15:04:05.000000000Z"

// sortableTime renders a timestamp for use in a range key.
func sortableTime(t time.Time) string {
	return t.UTC().Format(sortKeyTimeFormat)
}

func stringAttr(v string) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: v}
}
