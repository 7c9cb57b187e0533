package main

import (
	"github.com/roscolil/scopeiq"
)

// Service palette for the architecture diagrams.
var (
	colStorage  = scopeiq.RGB(255, 153, 0)
	colDatabase = scopeiq.RGB(140, 79, 255)
	colCompute  = scopeiq.RGB(255, 181, 71)
	colNetwork  = scopeiq.RGB(30, 115, 190)
	colSecurity = scopeiq.RGB(0, 125, 188)
	colAI       = scopeiq.RGB(254, 203, 47)
	colMonitor  = scopeiq.RGB(0, 153, 153)
)

// deckPlan is the embedded ScopeIQ go-to-market content plan.
func deckPlan() ([]scopeiq.SlideSpec, error) {
	st := scopeiq.DefaultStyle()

	arch, err := architectureDiagram(st)
	if err != nil {
		return nil, err
	}
	flow, err := dataFlowDiagram(st)
	if err != nil {
		return nil, err
	}

	return []scopeiq.SlideSpec{
		{
			Layout:   scopeiq.TitleLayout,
			Title:    "ScopeIQ — Go-to-Market Roadmap & Architecture",
			Subtitle: "AI-powered insights for smarter builds • 2025",
		},
		{
			Layout: scopeiq.BulletLayout,
			Title:  "Vision & Opportunity",
			Blocks: []scopeiq.Block{
				&scopeiq.BulletList{Items: []string{
					"Empower AEC & facilities teams to interpret plans/specs instantly with AI",
					"$20B+ construction tech market; pain = time wasted, errors, collaboration gaps",
					"ScopeIQ edge: AI querying, continuous ML, secure multi-tenant SaaS",
				}},
			},
		},
		{
			Layout: scopeiq.BulletLayout,
			Title:  "Target Segments",
			Blocks: []scopeiq.Block{
				&scopeiq.BulletList{Items: []string{
					"Architecture & Engineering — instant plan/spec queries",
					"Construction PMs — faster answers, fewer RFIs",
					"Facility Owners/Managers — quick retrieval from archives",
				}},
			},
		},
		{
			Layout: scopeiq.BulletLayout,
			Title:  "Product & Pricing",
			Blocks: []scopeiq.Block{
				&scopeiq.Table{
					Headers: []string{"Tier", "Price", "Who", "Key Features"},
					Rows: [][]string{
						{"Free", "$0", "Solo / trial", "3 uploads/mo, basic AI query"},
						{"Starter", "$49 / user", "Small teams", "Unlimited uploads, standard AI"},
						{"Pro", "$99-149 / user", "Growing teams / API", "Multi-user, faster AI, API access"},
						{"Enterprise", "Custom", "Large orgs / SSO", "Unlimited, custom AI training, SSO, SLA"},
					},
				},
			},
		},
		{
			Layout: scopeiq.BlankCanvasLayout,
			Title:  "Key Performance Indicators",
			Blocks: []scopeiq.Block{
				&scopeiq.ChartRow{Specs: []scopeiq.ChartSpec{
					{
						Kind:    scopeiq.LineChart,
						Title:   "MRR Growth ($k)",
						XLabels: []string{"M1", "M2", "M3", "M4", "M5", "M6"},
						YValues: []float64{5, 10, 18, 30, 45, 65},
					},
					{
						Kind:    scopeiq.BarChart,
						Title:   "Free to Paid Conversion (%)",
						XLabels: []string{"M1", "M2", "M3", "M4", "M5", "M6"},
						YValues: []float64{5, 6, 7, 8, 9, 10},
					},
					{
						Kind:    scopeiq.AreaChart,
						Title:   "User Growth",
						XLabels: []string{"M1", "M2", "M3", "M4", "M5", "M6"},
						YValues: []float64{100, 250, 500, 800, 1200, 2000},
					},
				}},
			},
		},
		{
			Layout: scopeiq.BulletLayout,
			Title:  "Launch Plan (0-3 Months)",
			Blocks: []scopeiq.Block{
				&scopeiq.BulletList{Items: []string{
					"Weekly live demos/webinars (record & publish)",
					"PR to construction tech outlets",
					"LinkedIn ads & targeted outreach (>=500 firms)",
					"2 articles/month — AI for plans/specs, case studies",
					"KPIs: 500 free sign-ups; 5-8% conversion; CAC < 30% of Year-1 LTV",
				}},
			},
		},
		{
			Layout: scopeiq.BlankCanvasLayout,
			Title:  "High-Level Architecture",
			Blocks: []scopeiq.Block{arch},
		},
		{
			Layout: scopeiq.BlankCanvasLayout,
			Title:  "AI & Data Flow",
			Blocks: []scopeiq.Block{flow},
		},
		{
			Layout: scopeiq.BulletLayout,
			Title:  "Next Steps",
			Blocks: []scopeiq.Block{
				&scopeiq.BulletList{Items: []string{
					"Finalize beta recruitment & early access",
					"Publish launch PR & schedule webinars",
					"Implement referral & affiliate programs",
					"Prepare 3 early customer case studies",
				}},
			},
		},
	}, nil
}

func boxStyle(fill scopeiq.Color, st scopeiq.Style) scopeiq.BoxStyle {
	return scopeiq.BoxStyle{
		Fill:      fill,
		Opacity:   0.85,
		TextColor: st.Ink,
		Bold:      true,
	}
}

// architectureDiagram lays out the service landscape. Connectors
// between boxes are anchored so they follow the box geometry.
func architectureDiagram(st scopeiq.Style) (*scopeiq.Diagram, error) {
	d := scopeiq.NewDiagram()
	d.Caption = "Amplify/CloudFront deliver the app; Cognito secures access; AppSync provides APIs; " +
		"Lambda handles processing; S3/DynamoDB store content; AI/Search (OpenAI, Pinecone, PDF.js) " +
		"powers insights; CloudWatch monitors."

	client, err := d.AddBox("Client Layer\nReact Web App • PWA • Query Scoping",
		0.5, 1.2, 9.0, 0.9, scopeiq.BoxStyle{Fill: st.Paper, Opacity: 1.0, TextColor: st.Ink, Bold: true})
	if err != nil {
		return nil, err
	}

	type placement struct {
		label      string
		x, y, w, h float64
		style      scopeiq.BoxStyle
	}
	middle := []placement{
		{"Amplify / CloudFront", 0.5, 2.4, 2.7, 1.0, boxStyle(colNetwork, st)},
		{"Cognito", 3.35, 2.4, 2.2, 1.0, boxStyle(colSecurity, st)},
		{"AppSync", 5.8, 2.4, 2.2, 1.0, scopeiq.BoxStyle{Fill: st.Brand, Opacity: 0.75, TextColor: scopeiq.RGB(255, 255, 255), Bold: true}},
		{"Lambda", 8.2, 2.4, 1.3, 1.0, boxStyle(colCompute, st)},
	}
	boxes := make([]*scopeiq.ServiceBox, 0, len(middle))
	for _, pl := range middle {
		b, err := d.AddBox(pl.label, pl.x, pl.y, pl.w, pl.h, pl.style)
		if err != nil {
			return nil, err
		}
		boxes = append(boxes, b)
	}

	lower := []placement{
		{"Amazon S3\n(Documents & Thumbnails)", 0.5, 3.7, 3.2, 1.0, boxStyle(colStorage, st)},
		{"DynamoDB\n(Multi-Tenant DB)", 3.9, 3.7, 3.0, 1.0, boxStyle(colDatabase, st)},
		{"AI & Search\nOpenAI • Pinecone • PDF.js", 7.1, 3.7, 2.4, 1.0, boxStyle(colAI, st)},
		{"CloudWatch\n(Monitoring & Logs)", 0.5, 4.9, 2.7, 0.9, boxStyle(colMonitor, st)},
	}
	for _, pl := range lower {
		b, err := d.AddBox(pl.label, pl.x, pl.y, pl.w, pl.h, pl.style)
		if err != nil {
			return nil, err
		}
		boxes = append(boxes, b)
	}

	// Edge services hang off the client layer.
	for _, b := range boxes[:3] {
		err = d.Connect(b, client, scopeiq.AnchorTop, scopeiq.AnchorBottom, st.Connector)
		if err != nil {
			return nil, err
		}
	}

	// Free-form connectors where the anchor points are hand-picked.
	raw := [][4]float64{
		{6.9, 3.4, 6.9, 2.4},
		{2.1, 3.7, 2.1, 3.4},
		{5.4, 3.7, 5.4, 3.4},
		{8.3, 3.4, 8.3, 2.4},
		{8.3, 4.7, 8.3, 4.3},
	}
	for _, r := range raw {
		err = d.AddConnector(r[0], r[1], r[2], r[3], st.Connector)
		if err != nil {
			return nil, err
		}
	}

	return d, nil
}

// dataFlowDiagram is the numbered pipeline view.
func dataFlowDiagram(st scopeiq.Style) (*scopeiq.Diagram, error) {
	d := scopeiq.NewDiagram()
	d.Caption = "S3 stores files; DynamoDB tracks metadata; Lambda orchestrates analysis; " +
		"embeddings go to Pinecone; AppSync exposes semantic search; CloudWatch monitors."

	white := scopeiq.RGB(255, 255, 255)
	stages := []struct {
		label      string
		x, y, w, h float64
		style      scopeiq.BoxStyle
	}{
		{"1) Upload -> S3", 0.5, 1.6, 2.5, 0.9, boxStyle(colStorage, st)},
		{"2) Metadata -> DynamoDB", 3.2, 1.6, 2.5, 0.9, boxStyle(colDatabase, st)},
		{"3) Processing -> Lambda", 5.9, 1.6, 2.5, 0.9, boxStyle(colCompute, st)},
		{"4) AI Analysis -> Textract • Comprehend • GPT-4 • PDF.js", 0.5, 2.8, 8.0, 0.9,
			scopeiq.BoxStyle{Fill: colAI, Opacity: 0.9, TextColor: st.Ink, Bold: true}},
		{"5) Embedding/Index -> Pinecone", 0.5, 4.0, 2.9, 0.9,
			scopeiq.BoxStyle{Fill: st.Brand, Opacity: 0.75, TextColor: white, Bold: true}},
		{"6) Search API -> AppSync", 3.6, 4.0, 2.9, 0.9,
			scopeiq.BoxStyle{Fill: st.Brand, Opacity: 0.75, TextColor: white, Bold: true}},
		{"7) Monitoring -> CloudWatch", 6.7, 4.0, 2.0, 0.9, boxStyle(colMonitor, st)},
	}

	boxes := make([]*scopeiq.ServiceBox, 0, len(stages))
	for _, s := range stages {
		b, err := d.AddBox(s.label, s.x, s.y, s.w, s.h, s.style)
		if err != nil {
			return nil, err
		}
		boxes = append(boxes, b)
	}

	// Stage pipeline: the first three stages feed the analysis bar.
	for i := 0; i < 2; i++ {
		err := d.Connect(boxes[i], boxes[i+1], scopeiq.AnchorRight, scopeiq.AnchorLeft, st.Connector)
		if err != nil {
			return nil, err
		}
	}
	err := d.Connect(boxes[2], boxes[3], scopeiq.AnchorBottom, scopeiq.AnchorTop, st.Connector)
	if err != nil {
		return nil, err
	}
	err = d.Connect(boxes[4], boxes[5], scopeiq.AnchorRight, scopeiq.AnchorLeft, st.Connector)
	if err != nil {
		return nil, err
	}

	return d, nil
}
