package domain

import "time"

type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderInProgress OrderStatus = "In Progress"
	OrderCompleted  OrderStatus = "Completed"
	OrderCancelled  OrderStatus = "Cancelled"
)

type LeadStatus string

const (
	LeadNew       LeadStatus = "New"
	LeadContacted LeadStatus = "Contacted"
	LeadConverted LeadStatus = "Converted"
)

// KeyValue is a labelled field inside an execution-spec section.
type KeyValue struct {
	Label string `json:"label" firestore:"label"`
	Value string `json:"value" firestore:"value"`
}

// ExecutionSection groups the technical fields of one creative spec.
type ExecutionSection struct {
	Title  string     `json:"title" firestore:"title"`
	Fields []KeyValue `json:"fields" firestore:"fields"`
}

// ContentSection is a long-form block on the ad detail page. Either
// Paragraph or Bullets is set, never both.
type ContentSection struct {
	Title     string   `json:"title" firestore:"title"`
	Paragraph string   `json:"paragraph,omitempty" firestore:"paragraph,omitempty"`
	Bullets   []string `json:"bullets,omitempty" firestore:"bullets,omitempty"`
}

type AdCardStats struct {
	UsedFor  string `json:"usedFor" firestore:"usedFor"`
	AdType   string `json:"adType" firestore:"adType"`
	LeadTime string `json:"leadTime" firestore:"leadTime"`
	Span     string `json:"span" firestore:"span"`
}

type AdCardPricing struct {
	Original   string `json:"original" firestore:"original"`
	Discounted string `json:"discounted" firestore:"discounted"`
	MinBilling string `json:"minBilling" firestore:"minBilling"`
}

// AdCard is one catalog entry inside the site content document. Prices are
// display strings, not numbers; pricing is manual downstream.
type AdCard struct {
	ID               string             `json:"id" firestore:"id"`
	Title            string             `json:"title" firestore:"title"`
	Description      string             `json:"description" firestore:"description"`
	Price            string             `json:"price" firestore:"price"`
	ImageURL         string             `json:"imageUrl" firestore:"imageUrl"`
	Images           []string           `json:"images,omitempty" firestore:"images,omitempty"`
	Category         string             `json:"category" firestore:"category"` // "top" or "more"
	Stats            AdCardStats        `json:"stats" firestore:"stats"`
	Pricing          AdCardPricing      `json:"pricing" firestore:"pricing"`
	ExecutionDetails []ExecutionSection `json:"executionDetails" firestore:"executionDetails"`
	ContentSections  []ContentSection   `json:"contentSections" firestore:"contentSections"`
}

type FaqItem struct {
	ID       string   `json:"id" firestore:"id"`
	Question string   `json:"question" firestore:"question"`
	Answer   []string `json:"answer" firestore:"answer"`
}

type HomeSection struct {
	Title       string `json:"title" firestore:"title"`
	Description string `json:"description" firestore:"description"`
	ButtonText  string `json:"buttonText" firestore:"buttonText"`
}

type PlatformHeader struct {
	MonthlyUsers      string `json:"monthlyUsers" firestore:"monthlyUsers"`
	PlatformType      string `json:"platformType" firestore:"platformType"`
	BudgetDescription string `json:"budgetDescription" firestore:"budgetDescription"`
	PricingModels     string `json:"pricingModels" firestore:"pricingModels"`
	BidType           string `json:"bidType" firestore:"bidType"`
	Categories        string `json:"categories" firestore:"categories"`
}

type PlatformIntro struct {
	Title string `json:"title" firestore:"title"`
	P1    string `json:"p1" firestore:"p1"`
	P2    string `json:"p2" firestore:"p2"`
	P3    string `json:"p3" firestore:"p3"`
}

// AdPlatform holds everything shown on the ad-inventory landing and detail
// pages, including the card catalog itself.
type AdPlatform struct {
	PlatformName           string         `json:"platformName" firestore:"platformName"`
	LogoURL                string         `json:"logoUrl" firestore:"logoUrl"`
	HeroBackgroundImageURL string         `json:"heroBackgroundImageUrl" firestore:"heroBackgroundImageUrl"`
	HomeSection            HomeSection    `json:"homeSection" firestore:"homeSection"`
	Header                 PlatformHeader `json:"header" firestore:"header"`
	Intro                  PlatformIntro  `json:"intro" firestore:"intro"`
	Cards                  []AdCard       `json:"cards" firestore:"cards"`
	Faqs                   []FaqItem      `json:"faqs" firestore:"faqs"`
}

type ServiceItem struct {
	ID          string `json:"id" firestore:"id"`
	Title       string `json:"title" firestore:"title"`
	Description string `json:"description" firestore:"description"`
	BtnText     string `json:"btnText" firestore:"btnText"`
	ImageURL    string `json:"imageUrl,omitempty" firestore:"imageUrl,omitempty"`
}

type ServiceCategory struct {
	ID           string   `json:"id" firestore:"id"`
	CategoryName string   `json:"categoryName" firestore:"categoryName"`
	Items        []string `json:"items" firestore:"items"`
}

type Brand struct {
	Line1 string `json:"line1" firestore:"line1"`
	Line2 string `json:"line2" firestore:"line2"`
}

type Hero struct {
	Title    string `json:"title" firestore:"title"`
	Subtitle string `json:"subtitle" firestore:"subtitle"`
	CtaText  string `json:"ctaText" firestore:"ctaText"`
	ImageURL string `json:"imageUrl" firestore:"imageUrl"`
}

type Services struct {
	TopServices  []ServiceItem     `json:"topServices" firestore:"topServices"`
	MoreServices []ServiceCategory `json:"moreServices" firestore:"moreServices"`
}

type Stat struct {
	Val   string `json:"val" firestore:"val"`
	Label string `json:"label" firestore:"label"`
}

type Stats struct {
	MainText       string `json:"mainText" firestore:"mainText"`
	Stat1          Stat   `json:"stat1" firestore:"stat1"`
	Stat2          Stat   `json:"stat2" firestore:"stat2"`
	Stat3          Stat   `json:"stat3" firestore:"stat3"`
	CtaTitle       string `json:"ctaTitle" firestore:"ctaTitle"`
	CtaDescription string `json:"ctaDescription" firestore:"ctaDescription"`
}

type Contact struct {
	Address   string `json:"address" firestore:"address"`
	Phone     string `json:"phone" firestore:"phone"`
	Email     string `json:"email" firestore:"email"`
	Instagram string `json:"instagram" firestore:"instagram"`
	LinkedIn  string `json:"linkedin" firestore:"linkedin"`
}

// SiteData is the shared singleton document holding all public-page copy and
// the ad catalog. Any write fully replaces the remote document; the read path
// merges against compiled-in defaults.
type SiteData struct {
	Brand      Brand      `json:"brand" firestore:"brand"`
	Hero       Hero       `json:"hero" firestore:"hero"`
	Services   Services   `json:"services" firestore:"services"`
	Stats      Stats      `json:"stats" firestore:"stats"`
	Contact    Contact    `json:"contact" firestore:"contact"`
	AdPlatform AdPlatform `json:"adPlatform" firestore:"adPlatform"`
}

// UserProfile is the mutable part of a user account document.
type UserProfile struct {
	Name  string `json:"name" firestore:"name"`
	Phone string `json:"phone" firestore:"phone"`
	Email string `json:"email" firestore:"email"`
}

// CartItem is a point-in-time copy of an AdCard. Later catalog edits never
// change an entry already in a cart.
type CartItem struct {
	AdCard    // flattened into the cart entry, snapshot of the catalog card
	CartID    string `json:"cartId" firestore:"cartId"`
	DateAdded int64  `json:"dateAdded" firestore:"dateAdded"` // unix millis
}

// Order is produced from a user's entire cart at checkout. TotalAmount stays
// "Calculating..." until priced manually.
type Order struct {
	ID          string      `json:"id" firestore:"-"`
	UserID      string      `json:"userId" firestore:"userId"`
	UserName    string      `json:"userName,omitempty" firestore:"userName,omitempty"`
	UserEmail   string      `json:"userEmail,omitempty" firestore:"userEmail,omitempty"`
	Items       []CartItem  `json:"items" firestore:"items"`
	TotalAmount string      `json:"totalAmount" firestore:"totalAmount"`
	Status      OrderStatus `json:"status" firestore:"status"`
	DateOrdered time.Time   `json:"dateOrdered" firestore:"dateOrdered"`
}

// Consultation is a contact-form lead submitted by an anonymous visitor.
type Consultation struct {
	ID        string     `json:"id" firestore:"-"`
	FirstName string     `json:"firstName" firestore:"firstName"`
	LastName  string     `json:"lastName" firestore:"lastName"`
	Email     string     `json:"email" firestore:"email"`
	Phone     string     `json:"phone" firestore:"phone"`
	Message   string     `json:"message" firestore:"message"`
	Status    LeadStatus `json:"status" firestore:"status"`
	CreatedAt time.Time  `json:"createdAt" firestore:"createdAt"`
}

// ChatSession summarizes one user conversation. The document id is the
// owning user's id; messages live in a nested collection under it.
type ChatSession struct {
	ID          string    `json:"id" firestore:"-"`
	UserName    string    `json:"userName" firestore:"userName"`
	LastMessage string    `json:"lastMessage" firestore:"lastMessage"`
	LastUpdated time.Time `json:"lastUpdated" firestore:"lastUpdated"`
	UserID      string    `json:"userId" firestore:"userId"`
}

// ChatMessage is append-only and ordered by creation time.
type ChatMessage struct {
	ID        string    `json:"id" firestore:"-"`
	Text      string    `json:"text" firestore:"text"`
	SenderID  string    `json:"senderId" firestore:"senderId"`
	IsAdmin   bool      `json:"isAdmin" firestore:"isAdmin"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}
