// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package site

import (
	"database/sql"
	"time"

	"github.com/lovelliph/Services/internal/store"
)

const pexels = "?auto=compress&cs=tinysrgb&w=1920"

// DefaultServices are shown when the services table is empty.
func DefaultServices() []store.Service {
	return []store.Service{
		{
			ID:              1,
			Title:           "Digital Marketing",
			Slug:            "digital-marketing",
			Description:     "Strategic campaigns that drive engagement, build brand awareness, and deliver measurable results across all digital channels.",
			Image:           "https://images.pexels.com/photos/3183150/pexels-photo-3183150.jpeg" + pexels,
			Icon:            "target",
			Position:        1,
			Features:        store.StringList{"SEO Optimization", "PPC Campaigns", "Email Marketing", "Analytics & Reporting", "Conversion Optimization", "Market Research"},
			LongDescription: "Our digital marketing services combine data-driven strategies with creative execution to help your brand stand out in the digital landscape. We focus on measurable results and continuous optimization to ensure your marketing investments deliver maximum ROI.",
			Benefits: store.StringList{
				"Increase brand visibility and reach",
				"Drive qualified traffic to your website",
				"Improve conversion rates and customer acquisition",
				"Build long-term customer relationships",
				"Gain competitive market advantage",
			},
		},
		{
			ID:              2,
			Title:           "Social Media Management",
			Slug:            "social-media-management",
			Description:     "Curated content strategies and community management that transform your brand presence into a thriving digital community.",
			Image:           "https://images.pexels.com/photos/3182783/pexels-photo-3182783.jpeg" + pexels,
			Icon:            "share",
			Position:        2,
			Features:        store.StringList{"Content Strategy", "Community Management", "Social Media Advertising", "Platform Optimization", "Engagement Analytics", "Influencer Collaboration"},
			LongDescription: "We create and execute comprehensive social media strategies that build authentic connections with your audience. Our team manages your social presence across all platforms, ensuring consistent brand messaging and meaningful engagement.",
			Benefits: store.StringList{
				"Build engaged social communities",
				"Increase brand awareness and loyalty",
				"Drive traffic and conversions from social",
				"Enhance customer service through social channels",
				"Stay ahead of social media trends",
			},
		},
		{
			ID:              3,
			Title:           "Content Creation",
			Slug:            "content-creation",
			Description:     "Original, compelling content crafted to resonate with your audience and amplify your brand message across platforms.",
			Image:           "https://images.pexels.com/photos/3945683/pexels-photo-3945683.jpeg" + pexels,
			Icon:            "video",
			Position:        3,
			Features:        store.StringList{"Video Production", "Photography", "Copywriting", "Graphic Design", "Blog Content", "Interactive Media"},
			LongDescription: "From concept to execution, we produce high-quality content that tells your brand story and engages your audience. Our creative team specializes in various content formats, ensuring your message reaches and resonates with your target audience.",
			Benefits: store.StringList{
				"Establish thought leadership in your industry",
				"Improve SEO with quality content",
				"Increase audience engagement",
				"Support sales enablement",
				"Build brand credibility and trust",
			},
		},
		{
			ID:              4,
			Title:           "Influencer & UGC Management",
			Slug:            "influencer-ugc-management",
			Description:     "Authentic partnerships with influencers and user-generated content strategies that amplify your reach and credibility.",
			Image:           "https://images.pexels.com/photos/3182769/pexels-photo-3182769.jpeg" + pexels,
			Icon:            "trending-up",
			Position:        4,
			Features:        store.StringList{"Influencer Sourcing", "Campaign Management", "UGC Strategy", "Rights Management", "Performance Tracking", "Brand Safety"},
			LongDescription: "Leverage the power of authentic voices to amplify your brand message. We connect you with the right influencers and manage comprehensive campaigns that drive awareness, engagement, and conversions through trusted recommendations.",
			Benefits: store.StringList{
				"Expand reach through trusted voices",
				"Build authentic brand connections",
				"Generate social proof at scale",
				"Increase conversion rates",
				"Access new audience segments",
			},
		},
		{
			ID:              5,
			Title:           "Creative Production & BPO",
			Slug:            "creative-production-bpo",
			Description:     "Full-service creative and business solutions delivered by skilled Filipino professionals working remotely for global excellence.",
			Image:           "https://images.pexels.com/photos/196644/pexels-photo-196644.jpeg" + pexels,
			Icon:            "users",
			Position:        5,
			Features:        store.StringList{"Remote Teams", "Design Services", "Administrative Support", "Customer Service", "Data Management", "Technical Support"},
			LongDescription: "Access world-class talent without the overhead. Our BPO services connect you with highly skilled Filipino professionals who deliver exceptional results across creative, administrative, and technical domains, all while working remotely.",
			Benefits: store.StringList{
				"Reduce operational costs significantly",
				"Access skilled talent pool",
				"Scale teams flexibly",
				"Improve operational efficiency",
				"Focus on core business activities",
			},
		},
	}
}

// DefaultService returns the built-in service with slug, if any.
func DefaultService(slug string) (store.Service, bool) {
	for _, s := range DefaultServices() {
		if s.Slug == slug {
			return s, true
		}
	}
	return store.Service{}, false
}

// DefaultProjects are the featured projects shown when none are stored.
func DefaultProjects() []store.Project {
	return []store.Project{
		{
			ID:          1,
			Title:       "Global Brand Campaign",
			Slug:        "global-brand-campaign",
			Description: "A comprehensive digital marketing campaign for a Fortune 500 company.",
			Image:       "https://images.pexels.com/photos/3183150/pexels-photo-3183150.jpeg" + pexels,
			Category:    "Digital Marketing",
			Client:      "Tech Company",
			Featured:    true,
		},
		{
			ID:          2,
			Title:       "Social Media Transformation",
			Slug:        "social-media-transformation",
			Description: "Complete social media overhaul and community building strategy.",
			Image:       "https://images.pexels.com/photos/3182783/pexels-photo-3182783.jpeg" + pexels,
			Category:    "Social Media",
			Client:      "Fashion Brand",
			Featured:    true,
		},
		{
			ID:          3,
			Title:       "Content Creation Series",
			Slug:        "content-creation-series",
			Description: "Monthly content production including videos, articles, and graphics.",
			Image:       "https://images.pexels.com/photos/3945683/pexels-photo-3945683.jpeg" + pexels,
			Category:    "Content",
			Client:      "E-commerce",
			Featured:    true,
		},
	}
}

func published(year int, month time.Month, day int) sql.NullTime {
	return sql.NullTime{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), Valid: true}
}

// DefaultBlogPosts are the posts shown when none are published.
func DefaultBlogPosts() []store.BlogPost {
	const small = "?auto=compress&cs=tinysrgb&w=800"
	return []store.BlogPost{
		{
			ID:            1,
			Title:         "The Future of Digital Marketing",
			Slug:          "the-future-of-digital-marketing",
			Excerpt:       "Exploring emerging trends and technologies shaping the industry.",
			Content:       "Exploring emerging trends and technologies shaping the industry.",
			Category:      "INSIGHTS",
			FeaturedImage: "https://images.pexels.com/photos/3183197/pexels-photo-3183197.jpeg" + small,
			Author:        "Lovelli Team",
			PublishedAt:   published(2025, time.January, 10),
		},
		{
			ID:            2,
			Title:         "Creating Memorable Brand Experiences",
			Slug:          "creating-memorable-brand-experiences",
			Excerpt:       "How thoughtful design connects people to brands.",
			Content:       "How thoughtful design connects people to brands.",
			Category:      "STORIES",
			FeaturedImage: "https://images.pexels.com/photos/3184398/pexels-photo-3184398.jpeg" + small,
			Author:        "Lovelli Team",
			PublishedAt:   published(2025, time.January, 5),
		},
		{
			ID:            3,
			Title:         "Strategic Partnerships That Work",
			Slug:          "strategic-partnerships-that-work",
			Excerpt:       "Building collaborative relationships for long-term success.",
			Content:       "Building collaborative relationships for long-term success.",
			Category:      "INSIGHTS",
			FeaturedImage: "https://images.pexels.com/photos/3184360/pexels-photo-3184360.jpeg" + small,
			Author:        "Lovelli Team",
			PublishedAt:   published(2024, time.December, 28),
		},
	}
}

// ServicesOr returns items, or the defaults when items is empty.
func ServicesOr(items []store.Service) []store.Service {
	if len(items) == 0 {
		return DefaultServices()
	}
	return items
}

func ProjectsOr(items []store.Project) []store.Project {
	if len(items) == 0 {
		return DefaultProjects()
	}
	return items
}

func BlogPostsOr(items []store.BlogPost) []store.BlogPost {
	if len(items) == 0 {
		return DefaultBlogPosts()
	}
	return items
}

// SeedData is the default content in the shape store.SeedContent inserts.
func SeedData() store.SeedData {
	return store.SeedData{
		Services:  DefaultServices(),
		Projects:  DefaultProjects(),
		BlogPosts: DefaultBlogPosts(),
	}
}
