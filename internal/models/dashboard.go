package models

// MonthlyCount is one month of a growth series
type MonthlyCount struct {
	Month   string `json:"month"`
	Vendors int64  `json:"vendors"`
}

// MonthBucket is a raw (year, month) aggregation bucket
type MonthBucket struct {
	Year  int   `bson:"year"`
	Month int   `bson:"month"`
	Count int64 `bson:"count"`
}

// CampaignStats breaks campaigns down by status
type CampaignStats struct {
	Active    int64 `json:"active"`
	Completed int64 `json:"completed"`
	Draft     int64 `json:"draft"`
}

// Performance summarizes message delivery
type Performance struct {
	DeliveryRate   int   `json:"deliveryRate"`
	QueuedMessages int64 `json:"queuedMessages"`
}

// AdminDashboard is the admin overview
type AdminDashboard struct {
	TotalVendors      int64          `json:"totalVendors"`
	ActiveVendors     int64          `json:"activeVendors"`
	TotalContacts     int64          `json:"totalContacts"`
	TotalCampaigns    int64          `json:"totalCampaigns"`
	MessagesInQueue   int64          `json:"messagesInQueue"`
	MessagesProcessed int64          `json:"messagesProcessed"`
	VendorGrowth      []MonthlyCount `json:"vendorGrowth"`
	CampaignStats     CampaignStats  `json:"campaignStats"`
	Performance       Performance    `json:"performance"`
}

// VendorDashboard is a vendor's own overview
type VendorDashboard struct {
	TotalContacts     int64            `json:"totalContacts"`
	TotalTemplates    int64            `json:"totalTemplates"`
	TemplatesByStatus map[string]int64 `json:"templatesByStatus"`
	TotalCampaigns    int64            `json:"totalCampaigns"`
	BusinessConnected bool             `json:"businessConnected"`
}
