// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package site holds the fixed copy of the public marketing page and the
// fallback content shown while the database has none.
package site

// Highlight is a short service teaser on the home page.
type Highlight struct {
	Icon        string
	Title       string
	Description string
	Image       string
}

// Testimonial is one client quote in the carousel.
type Testimonial struct {
	Text    string
	Author  string
	Company string
}

// Plan is a pricing tier. A zero Price means custom pricing.
type Plan struct {
	Name        string
	Price       int
	Description string
	Features    []string
	Featured    bool
}

// Custom reports whether the plan is quoted per project.
func (p Plan) Custom() bool { return p.Price == 0 }

// Benefit is a careers section bullet.
type Benefit struct {
	Icon        string
	Title       string
	Description string
}

// Hero is the top of the home page.
type Hero struct {
	Headline string
	Subline  string
	CTA      string
	Image    string
	Tags     []string
}

// Contact holds the footer details.
type Contact struct {
	Email     string
	Phone     string
	Location  string
	Copyright string
	Socials   []Social
}

// Social is a footer link.
type Social struct {
	Name string
	URL  string
}

// Page is the static copy of the home page.
type Page struct {
	Hero         Hero
	ServicesHead string
	ServicesSub  string
	Highlights   []Highlight
	Testimonials []Testimonial
	PricingHead  string
	PricingSub   string
	Plans        []Plan
	MissionHead  string
	MissionText  string
	Careers      Careers
	Contact      Contact
}

// Careers is the recruiting call to action.
type Careers struct {
	Headline string
	Text     string
	CTA      string
	Benefits []Benefit
}

// Home returns the static copy of the home page. Each call returns a
// fresh value so callers may modify it.
func Home() Page {
	return Page{
		Hero: Hero{
			Headline: "If your business could speak, what story would it tell?",
			Subline:  "We've crafted 100+ digital experiences blending design, code, and visuals to bring ideas to life.",
			CTA:      "Start Your Project",
			Image:    "https://images.pexels.com/photos/3182812/pexels-photo-3182812.jpeg?auto=compress&cs=tinysrgb&w=1920",
			Tags:     []string{"Design", "Development", "Strategy", "Production", "Marketing", "Growth"},
		},
		ServicesHead: "Showcasing Designs That Solve Real User Problems",
		ServicesSub:  "We create thoughtful, user-centered solutions through design, development, and illustration.",
		Highlights: []Highlight{
			{"share", "Consulting & Strategy", "Shaping the future of your brand through thoughtful digital strategy.", "https://images.pexels.com/photos/3182812/pexels-photo-3182812.jpeg"},
			{"video", "Social Media Management", "We manage your social media with strategy, consistency, and creativity!", "https://images.pexels.com/photos/3183150/pexels-photo-3183150.jpeg"},
			{"trending-up", "Creative Collaborations", "Influencer management focused on strategic collaborations that amplify your brand.", "https://images.pexels.com/photos/3182783/pexels-photo-3182783.jpeg"},
			{"video", "Creative Production", "High-quality reels, TikTok videos, and product shots that capture attention.", "https://images.pexels.com/photos/3945683/pexels-photo-3945683.jpeg"},
			{"target", "Digital Talent Acquisition", "Finding the right talent to drive results and take your business to the next level.", "https://images.pexels.com/photos/3182769/pexels-photo-3182769.jpeg"},
		},
		Testimonials: []Testimonial{
			{"Incredible design work that not only elevated our brand but also enhanced user experience beyond our expectations.", "Sarah Chen", "Tech Startup"},
			{"Professional, reliable, and results-driven. The team made sure we were always in the loop and delivered top-notch results.", "Marcus Johnson", "E-commerce Brand"},
			{"The team's creativity and innovative approach transformed our product into something truly extraordinary.", "Emily Rodriguez", "Fashion Brand"},
			{"An amazing team that listens carefully, adapts to changes swiftly, and consistently delivers high-quality work.", "David Kim", "Digital Agency"},
		},
		PricingHead: "Pricing That Matches Your Goals and Budget",
		PricingSub:  "Custom plans designed to fit your project needs. No fluff.",
		Plans: []Plan{
			{
				Name:        "Basic Social Media Package",
				Price:       250,
				Description: "Best for: Small businesses and startups",
				Features:    []string{"Content Planning", "Monthly Posts", "Community Engagement", "Basic Analytics", "Monthly Reporting"},
			},
			{
				Name:        "Growth Package",
				Price:       350,
				Description: "For businesses ready to expand digital presence",
				Features:    []string{"All Basic Features", "Advanced Analytics", "Strategy Consultation", "Multi-Channel Management", "Priority Support"},
				Featured:    true,
			},
			{
				Name:        "Trend & Content Package",
				Description: "Custom pricing based on scope and creators",
				Features:    []string{"Creator Collaboration Planning", "Content Production", "Campaign Management", "Performance Tracking", "Full Creative Direction"},
			},
		},
		MissionHead: "Building the Future with Strategic Design",
		MissionText: "Art + Technology + Strategy are the pillars that sustain our relentless pursuit to showcase our clients' projects at the highest level of the global market.",
		Careers: Careers{
			Headline: "Build your career with us",
			Text:     "We're always looking for talented individuals who are passionate about digital excellence and want to make an impact with global brands.",
			CTA:      "View Open Positions",
			Benefits: []Benefit{
				{"users", "Global Team", "Join talented professionals from around the world"},
				{"globe", "Remote Work", "Work from anywhere with flexible schedules"},
				{"trending-up", "Career Growth", "Continuous learning and advancement opportunities"},
			},
		},
		Contact: Contact{
			Email:     "hello@lovelli.com",
			Phone:     "+63 917 000 0000",
			Location:  "Manila, Philippines",
			Copyright: "Lovelli Philippines. All rights reserved.",
			Socials: []Social{
				{"Instagram", "https://instagram.com/lovelli"},
				{"LinkedIn", "https://linkedin.com/company/lovelli"},
				{"Twitter", "https://twitter.com/lovelli"},
			},
		},
	}
}
