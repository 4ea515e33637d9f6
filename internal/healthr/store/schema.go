package store

// Table names.
const (
	HospitalsTable = "hospitals"
	PatientsTable  = "patients"
)

// schemaStatements returns the DDL for the dialect, hospitals first so the
// patients reference resolves on engines that check it at creation time.
// MySQL cannot index TEXT keys, so key columns become VARCHAR there.
func schemaStatements(d Dialect) []string {
	keyType := "TEXT"
	if d == MySQL {
		keyType = "VARCHAR(16)"
	}

	hospitals := `CREATE TABLE IF NOT EXISTS hospitals (
    hospital_id ` + keyType + ` PRIMARY KEY,
    hospital_name TEXT,
    region TEXT,
    hospital_type TEXT,
    bed_count INTEGER,
    staff_count INTEGER,
    is_teaching_hospital INTEGER,
    quality_score REAL,
    specialties TEXT
)`

	patients := `CREATE TABLE IF NOT EXISTS patients (
    patient_id ` + keyType + ` PRIMARY KEY,
    hospital_id ` + keyType + `,
    age INTEGER,
    gender TEXT,
    diagnosis TEXT,
    treatment TEXT,
    admission_date TEXT,
    discharge_date TEXT,
    length_of_stay INTEGER,
    readmitted INTEGER,
    days_to_readmission INTEGER,
    insurance_type TEXT,
    FOREIGN KEY (hospital_id) REFERENCES hospitals(hospital_id)
)`

	if d == MySQL {
		hospitals += " ENGINE=InnoDB DEFAULT CHARSET=utf8mb4"
		patients += " ENGINE=InnoDB DEFAULT CHARSET=utf8mb4"
	}
	return []string{hospitals, patients}
}
