package content

import "trippcouch/pkg/domain"

// defaultSite is the compiled-in site content. It is both the initial state
// and the base every remote document is merged over, so a partial document
// never leaves a section empty.
var defaultSite = domain.SiteData{
	Brand: domain.Brand{
		Line1: "TRIPP COUCH",
		Line2: "STUDIO",
	},
	Hero: domain.Hero{
		Title:    "Your Complete Launch Platform:\nIntegrated Ads, Brand Design & Marketing.",
		Subtitle: "MARKETING. BRANDING. DESIGNING.",
		CtaText:  "",
		ImageURL: "https://cdni.iconscout.com/illustration/premium/thumb/digital-marketing-illustration-download-in-svg-png-gif-file-formats--business-social-media-online-advertisement-pack-illustrations-3375080.png",
	},
	Services: domain.Services{
		TopServices: []domain.ServiceItem{
			{ID: "s1", Title: "Marketing Strategies", Description: "Planning and executing data-driven ad campaigns to boost visibility, drive engagement, and increase conversions.", BtnText: "Connect With Us"},
			{ID: "s2", Title: "Branding", Description: "Positioning your brand, creating campaigns, and defining your voice.", BtnText: "Connect With Us"},
			{ID: "s3", Title: "Website and App Design", Description: "Modern, easy-to-understand website (portfolio, e-commerce, or business)", BtnText: "Connect With Us"},
		},
		MoreServices: []domain.ServiceCategory{
			{ID: "cat1", CategoryName: "BRANDING", Items: []string{"Brand & Strategy", "Positioning", "Storytelling & Copy", "Logos & Brand Marks"}},
			{ID: "cat2", CategoryName: "DIGITAL PRODUCTS", Items: []string{"Product Design & Development"}},
			{ID: "cat3", CategoryName: "DIGITAL MEDIA", Items: []string{"Website Design & Devlopement", "User Interface/Experience", "Motion Graphics"}},
			{ID: "cat4", CategoryName: "VISUAL COMMUNICATION", Items: []string{"Graphic Design & Illustrations", "Typeface Design", "Photography and Videography"}},
		},
	},
	Stats: domain.Stats{
		MainText:       "Tripp Couch Studio craft visual and marketing Strategies that elevate your brand.",
		Stat1:          domain.Stat{Val: "08+", Label: "websites launched"},
		Stat2:          domain.Stat{Val: "13+", Label: "Active campaigns for multiple companies and brands"},
		Stat3:          domain.Stat{Val: "25+", Label: "Different clients have sought our expertise"},
		CtaTitle:       "Looking for Expert Guidance?",
		CtaDescription: "Schedule a consultation with our media planner to seamlessly strategize and place your next promotion.",
	},
	Contact: domain.Contact{
		Address:   "Tidke Nagar, Behind City Center mall\nNashik, MH.\n422009",
		Phone:     "+91-7416155266",
		Email:     "Contact@trippcouchstudio.com",
		Instagram: "https://instagram.com",
		LinkedIn:  "https://linkedin.com",
	},
	AdPlatform: domain.AdPlatform{
		PlatformName:           "Zee5",
		LogoURL:                "https://upload.wikimedia.org/wikipedia/commons/5/5a/Zee5-official-logo.jpeg",
		HeroBackgroundImageURL: "https://images.unsplash.com/photo-1574375927938-d5a98e8ffe85?q=80&w=1000&auto=format&fit=crop",
		HomeSection: domain.HomeSection{
			Title:       "Target 100M+ Engaged Viewers on Zee5",
			Description: "Zee5 is one of India's leading streaming platforms, captivating a massive and loyal audience with premium shows and movies in 12 languages. Through our advertising partnership, we place your targeted, high-impact ads directly into this engaged content stream. Reach millions of viewers at the peak of their attention and drive real results with a brand presence that connects.",
			ButtonText:  "Advertise on Zee5",
		},
		Header: domain.PlatformHeader{
			MonthlyUsers:      "100 M",
			PlatformType:      "APP & WEBSITE",
			BudgetDescription: "Offering a variety of Indian TV shows and movies, Zee5 is a popular video streaming platform that is famous for a wide range of content in approx 12 languages. Zee5 uses engaging content to capture the attention of majorly Hindi-speaking users and improve visibility and awareness among them. With a Zee5 association, brands will be able to reach a larger user base through targeted ads.",
			PricingModels:     "CPM, CPCV, Fixed",
			BidType:           "Self and Managed Bid",
			Categories:        "OTT, Entertainment",
		},
		Intro: domain.PlatformIntro{
			Title: "Zee 5 Advertising Details",
			P1:    "Zee5 is a leading on-demand video streaming service operated by Zee Entertainment Enterprises. As a popular OTT platform with a vast audience, it offers exceptional opportunities for brand visibility and awareness. Zee5 advertising allows brands to engage potential customers effectively, driving sales by targeting viewers directly within the app experience. The platform integrates high-impact ads seamlessly alongside its content.",
			P2:    "Featuring a diverse library of content in over 12 languages, including popular shows like Kumkum Bhagya, Kundali Bhagya, and Meet, Zee5 provides a powerful channel to reach and grow your target customer base. Its comprehensive advertising solutions include video ads, banner ads, masthead placements, and more.",
			P3:    "By leveraging Zee5 for advertising, businesses can significantly enhance their marketing strategy and expand their reach. Interested in launching a campaign on Zee5? Contact us today to secure the best available advertising rates.",
		},
		Cards: []domain.AdCard{
			{
				ID:          "1",
				Title:       "Banner Ad",
				Description: "Banners Ads in Zee5 App are displayed on the homepage and will run on site as rectangular image ads in various sizes.",
				Price:       "₹ 1,80,123",
				ImageURL:    "https://images.unsplash.com/photo-1626814026160-2237a95fc5a0?q=80&w=1000&auto=format&fit=crop",
				Images: []string{
					"https://images.unsplash.com/photo-1626814026160-2237a95fc5a0?q=80&w=1000&auto=format&fit=crop",
					"https://images.unsplash.com/photo-1557838403-996675883e56?q=80&w=1000&auto=format&fit=crop",
					"https://images.unsplash.com/photo-1460925895917-afdab827c52f?q=80&w=1000&auto=format&fit=crop",
				},
				Category: "top",
				Stats:    domain.AdCardStats{UsedFor: "Reach", AdType: "Image", LeadTime: "48 - 72 Hours", Span: "1 Day"},
				Pricing:  domain.AdCardPricing{Original: "₹ 19,18,012", Discounted: "₹ 1,91,80,123", MinBilling: "₹ 19,18,0123"},
				ExecutionDetails: []domain.ExecutionSection{
					{
						Title: "CREATIVE TYPE : IMAGE",
						Fields: []domain.KeyValue{
							{Label: "DEVICE", Value: "Desktop"},
							{Label: "WIDTH", Value: "300px"},
							{Label: "HEIGHT", Value: "250px"},
							{Label: "FORMAT", Value: ".JPG"},
							{Label: "MAX FILE SIZE", Value: "Below 100kb"},
						},
					},
					{
						Title: "CREATIVE SPEC 2 : IMAGE",
						Fields: []domain.KeyValue{
							{Label: "DEVICE", Value: "Mobile"},
							{Label: "WIDTH", Value: "320px"},
							{Label: "HEIGHT", Value: "50px"},
							{Label: "FORMAT", Value: ".JPG"},
							{Label: "MAX FILE SIZE", Value: "Below 50kb"},
						},
					},
					{
						Title: "SOP",
						Fields: []domain.KeyValue{
							{Label: "PROOF OF EXECUTION", Value: "#Analytics and POE Report will be provided - (POE Report which includes the Impressions, reach, clicks, etc). It provides the KPI as per the campaign. # Reports will be provided after 24hrs once the campaign goes live."},
							{Label: "FIRST PROOF OF EXECUTION", Value: "24 Hours"},
							{Label: "PROOF OF EXECUTION FREQUENCY", Value: "At the end of the campaign only"},
						},
					},
				},
				ContentSections: []domain.ContentSection{
					{
						Title:     "Zee5 Banner Advertising",
						Paragraph: "Zee5 Banner ads are a highly effective way to promote your brand across various digital media platforms. These visually engaging ads can greatly enhance your online visibility, helping you reach a wider audience. Below, we cover all the essential aspects of banner ads, including their costs and templates that work best for platforms like Zee5.",
					},
					{
						Title: "Zee5 Banner Advertising Cost",
						Bullets: []string{
							"Platform: Different digital platforms have varying costs. For example, Instagram generally has higher costs due to its large user base.",
							"Ad Format: The type of ad you choose (static, animated, or interactive) can affect the cost.",
							"Audience Targeting: Advanced targeting options (like demographics, interests) help you reach a specific audience but may increase costs.",
							"Campaign Duration: Longer campaigns tend to be more expensive overall but provide better exposure.",
						},
					},
				},
			},
		},
		Faqs: []domain.FaqItem{
			{
				ID:       "f1",
				Question: "Why should you Advertise in Zee5?",
				Answer: []string{
					"Zee5 is a leading OTT platform in India with over 100 million monthly active users, making it a premier digital video destination.",
					"Through precise ad targeting, Zee5 ensures your campaigns engage the right viewers.",
					"As a trusted and widely-used streaming service, Zee5 provides significant advertising value.",
				},
			},
		},
	},
}

// Defaults returns an independent copy of the compiled-in site content.
func Defaults() domain.SiteData {
	return clone(defaultSite)
}
